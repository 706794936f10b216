package repository

import (
	"context"

	"employee-portal/internal/apperror"
	"employee-portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(ctx context.Context, l *model.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	ListByUser(ctx context.Context, userID uint) ([]model.LeaveRequest, error)
	ListPending(ctx context.Context) ([]model.LeaveRequest, error)
	DeleteIfPending(ctx context.Context, id uuid.UUID) error
	UpdateDecision(ctx context.Context, l *model.LeaveRequest) error
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db}
}

func (r *leaveRepository) Create(ctx context.Context, l *model.LeaveRequest) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return apperror.Dependency("create leave request", err)
	}
	return nil
}

func (r *leaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var l model.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if isNotFound(err) {
		return nil, model.ErrLeaveNotFound
	}
	if err != nil {
		return nil, apperror.Dependency("find leave request", err)
	}
	return &l, nil
}

func (r *leaveRepository) ListByUser(ctx context.Context, userID uint) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, apperror.Dependency("list leave requests", err)
	}
	return list, nil
}

// ListPending loads the requester for each row, oldest request first.
func (r *leaveRepository) ListPending(ctx context.Context) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", model.LeavePending).
		Preload("User").
		Order("created_at asc").
		Find(&list).Error
	if err != nil {
		return nil, apperror.Dependency("list pending leave requests", err)
	}
	return list, nil
}

// DeleteIfPending removes the request only while it is still pending.
func (r *leaveRepository) DeleteIfPending(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.LeavePending).
		Delete(&model.LeaveRequest{})
	if res.Error != nil {
		return apperror.Dependency("delete leave request", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrLeaveNotPending
	}
	return nil
}

// UpdateDecision writes a decision made in memory, provided the stored row
// is still pending.
func (r *leaveRepository) UpdateDecision(ctx context.Context, l *model.LeaveRequest) error {
	res := r.db.WithContext(ctx).
		Model(&model.LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, model.LeavePending).
		Updates(map[string]interface{}{
			"status":     l.Status,
			"decided_by": l.DecidedBy,
			"decided_at": l.DecidedAt,
		})
	if res.Error != nil {
		return apperror.Dependency("update leave decision", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrLeaveNotPending
	}
	return nil
}
