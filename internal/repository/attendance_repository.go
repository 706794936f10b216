package repository

import (
	"context"

	"employee-portal/internal/apperror"
	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *model.Attendance) error
	FindOpenByUser(ctx context.Context, userID uint) (*model.Attendance, error)
	Close(ctx context.Context, a *model.Attendance) error
	ListByUser(ctx context.Context, userID uint) ([]model.Attendance, error)
	ListAll(ctx context.Context) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

// Create inserts an open session. The unique open_slot index turns a second
// open session for the same user into ErrAlreadyOpen.
func (r *attendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if isDuplicateKey(err) {
		return model.ErrAlreadyOpen
	}
	if err != nil {
		return apperror.Dependency("create attendance", err)
	}
	return nil
}

func (r *attendanceRepository) FindOpenByUser(ctx context.Context, userID uint) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND clock_out_at IS NULL", userID).
		Order("clock_in_at desc").
		First(&a).Error
	if isNotFound(err) {
		return nil, model.ErrNoOpenSession
	}
	if err != nil {
		return nil, apperror.Dependency("find open attendance", err)
	}
	return &a, nil
}

// Close persists a session already closed in memory. It only matches a row
// that is still open, so a concurrent close loses with ErrAlreadyClosed.
func (r *attendanceRepository) Close(ctx context.Context, a *model.Attendance) error {
	res := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("id = ? AND clock_out_at IS NULL", a.ID).
		Updates(map[string]interface{}{
			"clock_out_at":   a.ClockOutAt,
			"open_slot":      nil,
			"worked_hours":   a.WorkingHours.Hours,
			"worked_minutes": a.WorkingHours.Minutes,
			"worked_seconds": a.WorkingHours.Seconds,
		})
	if res.Error != nil {
		return apperror.Dependency("close attendance", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrAlreadyClosed
	}
	return nil
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID uint) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("clock_in_at desc").Find(&list).Error
	if err != nil {
		return nil, apperror.Dependency("list attendance", err)
	}
	return list, nil
}

func (r *attendanceRepository) ListAll(ctx context.Context) ([]model.Attendance, error) {
	var list []model.Attendance
	if err := r.db.WithContext(ctx).Order("clock_in_at desc").Find(&list).Error; err != nil {
		return nil, apperror.Dependency("list attendance", err)
	}
	return list, nil
}
