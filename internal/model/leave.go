package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType string

const (
	LeaveCasual   LeaveType = "casual"
	LeaveSick     LeaveType = "sick"
	LeaveVacation LeaveType = "vacation"
)

var LeaveTypes = []LeaveType{LeaveCasual, LeaveSick, LeaveVacation}

// ParseLeaveType is case-insensitive.
func ParseLeaveType(s string) (LeaveType, bool) {
	lt := LeaveType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range LeaveTypes {
		if lt == t {
			return lt, true
		}
	}
	return "", false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID        uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uint        `json:"user_id" gorm:"index;not null"`
	LeaveType LeaveType   `json:"leave_type" gorm:"size:16;not null"`
	StartDate time.Time   `json:"start_date" gorm:"not null"`
	EndDate   time.Time   `json:"end_date" gorm:"not null"`
	Reason    string      `json:"reason" gorm:"type:text;not null"`
	Status    LeaveStatus `json:"status" gorm:"size:16;not null;default:pending;index"`
	DecidedBy *uint       `json:"decided_by,omitempty"`
	DecidedAt *time.Time  `json:"decided_at,omitempty"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Loaded for admin views only
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CanCancel reports whether requester may delete this request.
func (l *LeaveRequest) CanCancel(requesterID uint) error {
	if l.UserID != requesterID {
		return ErrNotLeaveOwner
	}
	if l.Status != LeavePending {
		return ErrLeaveNotPending
	}
	return nil
}

// Decide moves a pending request to approved or rejected.
func (l *LeaveRequest) Decide(status LeaveStatus, deciderID uint, at time.Time) error {
	if status != LeaveApproved && status != LeaveRejected {
		return ErrInvalidDecision
	}
	if l.Status != LeavePending {
		return ErrLeaveNotPending
	}
	l.Status = status
	l.DecidedBy = &deciderID
	l.DecidedAt = &at
	return nil
}
