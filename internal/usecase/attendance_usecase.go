package usecase

import (
	"context"
	"errors"

	"employee-portal/internal/model"
	"employee-portal/internal/recordquery"
	"employee-portal/internal/repository"
	"employee-portal/internal/token"
	"employee-portal/internal/worktime"

	"github.com/rs/zerolog/log"
)

type AttendanceUsecase struct {
	repo repository.AttendanceRepository
	now  Clock
}

func NewAttendanceUsecase(repo repository.AttendanceRepository, now Clock) *AttendanceUsecase {
	return &AttendanceUsecase{repo: repo, now: orSystem(now)}
}

// SessionStatus is the caller's current attendance state.
type SessionStatus struct {
	Open    bool               `json:"is_clocked_in"`
	Session *model.Attendance  `json:"session,omitempty"`
	Elapsed *worktime.Duration `json:"elapsed,omitempty"`
}

// ClockIn opens a session for the caller. A second open session is refused
// with ErrAlreadyOpen, by the lookup or by the store's unique open slot.
func (u *AttendanceUsecase) ClockIn(ctx context.Context, id token.Identity) (*model.Attendance, error) {
	// 1. Refuse early when a session is already open
	_, err := u.repo.FindOpenByUser(ctx, id.UserID)
	if err == nil {
		return nil, model.ErrAlreadyOpen
	}
	if !errors.Is(err, model.ErrNoOpenSession) {
		return nil, err
	}

	// 2. Insert; a concurrent clock-in loses on the unique index
	now := u.now()
	a := model.NewAttendance(id.UserID, id.Username, now)
	a.CreatedAt = now
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", id.UserID).Str("attendance_id", a.ID.String()).Msg("clocked in")
	return a, nil
}

// ClockOut closes the caller's open session and returns it with its duration.
func (u *AttendanceUsecase) ClockOut(ctx context.Context, id token.Identity) (*model.Attendance, error) {
	a, err := u.repo.FindOpenByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := a.Close(u.now()); err != nil {
		log.Error().Err(err).Uint("user_id", id.UserID).Time("clock_in", a.ClockInAt).Msg("clock out rejected")
		return nil, err
	}
	if err := u.repo.Close(ctx, a); err != nil {
		return nil, err
	}

	log.Info().
		Uint("user_id", id.UserID).
		Str("attendance_id", a.ID.String()).
		Str("worked", a.WorkingHours.String()).
		Msg("clocked out")
	return a, nil
}

func (u *AttendanceUsecase) Status(ctx context.Context, id token.Identity) (*SessionStatus, error) {
	a, err := u.repo.FindOpenByUser(ctx, id.UserID)
	if errors.Is(err, model.ErrNoOpenSession) {
		return &SessionStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	elapsed, err := worktime.Elapsed(a.ClockInAt, u.now())
	if err != nil {
		return nil, model.ErrClockSkew.Wrap(err)
	}
	return &SessionStatus{Open: true, Session: a, Elapsed: &elapsed}, nil
}

// History returns the caller's sessions, newest clock-in first, narrowed and
// ordered by q.
func (u *AttendanceUsecase) History(ctx context.Context, id token.Identity, q recordquery.Query) ([]model.Attendance, error) {
	list, err := u.repo.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return recordquery.Apply(list, q), nil
}

// All is History across every user, for admin views.
func (u *AttendanceUsecase) All(ctx context.Context, q recordquery.Query) ([]model.Attendance, error) {
	list, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return recordquery.Apply(list, q), nil
}
