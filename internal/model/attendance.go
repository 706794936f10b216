package model

import (
	"time"

	"employee-portal/internal/worktime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is one clock-in/clock-out session. OpenSlot carries the
// username while the session is open and is NULL once closed; its unique
// index is what keeps a user at one open session.
type Attendance struct {
	ID           uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uint              `json:"user_id" gorm:"index;not null"`
	Username     string            `json:"username" gorm:"size:64;index;not null"`
	ClockInAt    time.Time         `json:"clock_in_time" gorm:"not null;index"`
	ClockOutAt   *time.Time        `json:"clock_out_time"`
	OpenSlot     *string           `json:"-" gorm:"size:64;uniqueIndex"`
	WorkingHours worktime.Duration `json:"working_hours" gorm:"embedded;embeddedPrefix:worked_"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewAttendance opens a session for the given user.
func NewAttendance(userID uint, username string, at time.Time) *Attendance {
	slot := username
	return &Attendance{
		UserID:    userID,
		Username:  username,
		ClockInAt: at,
		OpenSlot:  &slot,
	}
}

func (a *Attendance) IsOpen() bool {
	return a.ClockOutAt == nil
}

// Close ends the session at the given time and records the worked duration.
func (a *Attendance) Close(at time.Time) (worktime.Duration, error) {
	if !a.IsOpen() {
		return worktime.Duration{}, ErrAlreadyClosed
	}
	d, err := worktime.Elapsed(a.ClockInAt, at)
	if err != nil {
		return worktime.Duration{}, ErrClockSkew.Wrap(err)
	}
	a.ClockOutAt = &at
	a.OpenSlot = nil
	a.WorkingHours = d
	return d, nil
}

func (a Attendance) RecordTime() time.Time             { return a.ClockInAt }
func (a Attendance) RecordUsername() string            { return a.Username }
func (a Attendance) RecordDuration() worktime.Duration { return a.WorkingHours }
