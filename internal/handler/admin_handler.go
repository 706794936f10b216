package handler

import (
	"bytes"

	"employee-portal/internal/apperror"
	"employee-portal/internal/report"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

var errInvalidUserID = apperror.Validation("invalid_user_id", "invalid user id")

type AdminHandler struct {
	users      *usecase.UserUsecase
	attendance *usecase.AttendanceUsecase
	leaves     *usecase.LeaveUsecase
}

func NewAdminHandler(users *usecase.UserUsecase, attendance *usecase.AttendanceUsecase, leaves *usecase.LeaveUsecase) *AdminHandler {
	return &AdminHandler{users: users, attendance: attendance, leaves: leaves}
}

// ListUsers lists regular users unless ?role= says otherwise.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext(), c.Query("role"))
	if err != nil {
		return err
	}
	return ok(c, "users", users)
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input usecase.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "user created successfully", user)
}

func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	admin, err := currentIdentity(c)
	if err != nil {
		return err
	}
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return errInvalidUserID
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.UserContext(), admin, uint(userID), input.Role)
	if err != nil {
		return err
	}
	return ok(c, "role updated", user)
}

// Attendance lists every session, with the same query parameters as the user history.
func (h *AdminHandler) Attendance(c *fiber.Ctx) error {
	q, err := historyQuery(c)
	if err != nil {
		return err
	}

	list, err := h.attendance.All(c.UserContext(), q)
	if err != nil {
		return err
	}
	return ok(c, "attendance records", toAttendanceViews(list))
}

func (h *AdminHandler) ExportAttendance(c *fiber.Ctx) error {
	// 1. Same filtering and ordering as the JSON view
	q, err := historyQuery(c)
	if err != nil {
		return err
	}
	list, err := h.attendance.All(c.UserContext(), q)
	if err != nil {
		return err
	}

	// 2. Render the workbook
	var buf bytes.Buffer
	if err := report.WriteAttendance(&buf, list); err != nil {
		return apperror.Dependency("render attendance report", err)
	}

	c.Set(fiber.HeaderContentType, report.ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance.xlsx"`)
	return c.Send(buf.Bytes())
}

func (h *AdminHandler) PendingLeave(c *fiber.Ctx) error {
	admin, err := currentIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.leaves.Pending(c.UserContext(), admin)
	if err != nil {
		return err
	}
	return ok(c, "pending leave requests", list)
}

func (h *AdminHandler) DecideLeave(c *fiber.Ctx) error {
	admin, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := parseBody(c, &input); err != nil {
		return err
	}

	l, err := h.leaves.Decide(c.UserContext(), admin, c.Params("id"), input.Status)
	if err != nil {
		return err
	}
	return ok(c, "leave request "+string(l.Status), l)
}
