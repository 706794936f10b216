package usecase

import (
	"context"
	"strings"
	"time"

	"employee-portal/internal/apperror"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/token"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const leaveDateLayout = "2006-01-02"

type LeaveUsecase struct {
	repo repository.LeaveRepository
	now  Clock
}

func NewLeaveUsecase(repo repository.LeaveRepository, now Clock) *LeaveUsecase {
	return &LeaveUsecase{repo: repo, now: orSystem(now)}
}

type SubmitLeaveInput struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Submit validates the input and stores a pending request. Checks run in
// order: missing fields, leave type, dates.
func (u *LeaveUsecase) Submit(ctx context.Context, id token.Identity, in SubmitLeaveInput) (*model.LeaveRequest, error) {
	// 1. Every field is required; report all that are absent
	var missing []apperror.FieldError
	for _, f := range []struct{ name, value string }{
		{"leave_type", in.LeaveType},
		{"start_date", in.StartDate},
		{"end_date", in.EndDate},
		{"reason", in.Reason},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, apperror.FieldError{Field: f.name, Message: "is required"})
		}
	}
	if len(missing) > 0 {
		return nil, model.ErrMissingField.WithFields(missing...)
	}

	// 2. Leave type, case-insensitive
	lt, ok := model.ParseLeaveType(in.LeaveType)
	if !ok {
		return nil, model.ErrInvalidLeaveType
	}

	// 3. Dates
	start, err := parseLeaveDate(in.StartDate)
	if err != nil {
		return nil, model.ErrInvalidDateRange.WithFields(apperror.FieldError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, err := parseLeaveDate(in.EndDate)
	if err != nil {
		return nil, model.ErrInvalidDateRange.WithFields(apperror.FieldError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if start.After(end) {
		return nil, model.ErrInvalidDateRange.WithFields(apperror.FieldError{Field: "start_date", Message: "must not be after end_date"})
	}

	// 4. Persist as pending
	l := &model.LeaveRequest{
		UserID:    id.UserID,
		LeaveType: lt,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    model.LeavePending,
		CreatedAt: u.now(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", id.UserID).Str("leave_id", l.ID.String()).Str("type", string(lt)).Msg("leave requested")
	return l, nil
}

func parseLeaveDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(leaveDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseLeaveID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, model.ErrInvalidLeaveID
	}
	return id, nil
}

// Cancel deletes the caller's own pending request.
func (u *LeaveUsecase) Cancel(ctx context.Context, id token.Identity, rawID string) error {
	leaveID, err := parseLeaveID(rawID)
	if err != nil {
		return err
	}

	l, err := u.repo.FindByID(ctx, leaveID)
	if err != nil {
		return err
	}
	if err := l.CanCancel(id.UserID); err != nil {
		return err
	}
	// The store re-checks the status, so a decision landing in between wins
	if err := u.repo.DeleteIfPending(ctx, leaveID); err != nil {
		return err
	}

	log.Info().Uint("user_id", id.UserID).Str("leave_id", leaveID.String()).Msg("leave cancelled")
	return nil
}

// History returns the caller's requests, newest first.
func (u *LeaveUsecase) History(ctx context.Context, id token.Identity) ([]model.LeaveRequest, error) {
	return u.repo.ListByUser(ctx, id.UserID)
}

// Pending lists every pending request with its requester, oldest first.
func (u *LeaveUsecase) Pending(ctx context.Context, admin token.Identity) ([]model.LeaveRequest, error) {
	if !admin.IsAdmin() {
		return nil, model.ErrAdminOnly
	}
	return u.repo.ListPending(ctx)
}

// Decide approves or rejects a pending request.
func (u *LeaveUsecase) Decide(ctx context.Context, admin token.Identity, rawID, decision string) (*model.LeaveRequest, error) {
	if !admin.IsAdmin() {
		return nil, model.ErrAdminOnly
	}
	leaveID, err := parseLeaveID(rawID)
	if err != nil {
		return nil, err
	}

	l, err := u.repo.FindByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	status := model.LeaveStatus(strings.ToLower(strings.TrimSpace(decision)))
	if err := l.Decide(status, admin.UserID, u.now()); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateDecision(ctx, l); err != nil {
		return nil, err
	}

	log.Info().Uint("admin_id", admin.UserID).Str("leave_id", leaveID.String()).Str("status", string(status)).Msg("leave decided")
	return l, nil
}
