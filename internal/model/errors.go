package model

import "employee-portal/internal/apperror"

// Attendance
var (
	ErrAlreadyOpen   = apperror.Conflict("already_open", "an attendance session is already open")
	ErrNoOpenSession = apperror.Conflict("no_open_session", "no active clock-in found")
	ErrAlreadyClosed = apperror.Conflict("already_closed", "attendance session is already closed")
	ErrClockSkew     = &apperror.Error{Kind: apperror.KindDependency, Code: "clock_skew", Message: "clock-out time is before clock-in time"}
)

// Leave
var (
	ErrMissingField     = apperror.Validation("missing_field", "all fields are required")
	ErrInvalidLeaveType = apperror.Validation("invalid_leave_type", "leave type must be one of casual, sick, vacation")
	ErrInvalidDateRange = apperror.Validation("invalid_date_range", "dates must be YYYY-MM-DD and start must not be after end")
	ErrInvalidDecision  = apperror.Validation("invalid_decision", "decision must be approved or rejected")
	ErrInvalidLeaveID   = apperror.Validation("invalid_leave_id", "invalid leave request id")
	ErrLeaveNotFound    = apperror.NotFound("leave_not_found", "leave request not found")
	ErrNotLeaveOwner    = apperror.Forbidden("not_leave_owner", "you can only delete your own leave requests")
	ErrLeaveNotPending  = apperror.Conflict("invalid_state", "only pending leave requests can be changed")
)

// Users
var (
	ErrUserNotFound       = apperror.NotFound("user_not_found", "user not found")
	ErrUsernameTaken      = apperror.Conflict("username_taken", "username already exists")
	ErrEmailTaken         = apperror.Conflict("email_taken", "email already exists")
	ErrInvalidRole        = apperror.Validation("invalid_role", `role must be either "user" or "admin"`)
	ErrInvalidCredentials = apperror.Unauthorized("invalid_credentials", "invalid credentials")
	ErrAdminOnly          = apperror.Forbidden("admin_only", "admin access required")
)
