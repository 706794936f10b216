package handler

import (
	"employee-portal/internal/model"
	"employee-portal/internal/recordquery"
	"employee-portal/internal/usecase"
	"employee-portal/internal/worktime"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendance *usecase.AttendanceUsecase
}

func NewAttendanceHandler(attendance *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// attendanceView adds the HH:MM:SS rendering of closed sessions.
type attendanceView struct {
	model.Attendance
	Formatted string `json:"formatted_working_hours,omitempty"`
}

func toAttendanceView(a model.Attendance) attendanceView {
	v := attendanceView{Attendance: a}
	if !a.IsOpen() {
		v.Formatted = worktime.Format(a.WorkingHours)
	}
	return v
}

func toAttendanceViews(list []model.Attendance) []attendanceView {
	out := make([]attendanceView, len(list))
	for i, a := range list {
		out[i] = toAttendanceView(a)
	}
	return out
}

func historyQuery(c *fiber.Ctx) (recordquery.Query, error) {
	return recordquery.ParseQuery(
		c.Query("start_date"),
		c.Query("end_date"),
		c.Query("min_hours"),
		c.Query("sort"),
		c.Query("order"),
	)
}

func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	a, err := h.attendance.ClockIn(c.UserContext(), id)
	if err != nil {
		return err
	}
	return created(c, "clocked in successfully", toAttendanceView(*a))
}

func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	a, err := h.attendance.ClockOut(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "clocked out successfully", toAttendanceView(*a))
}

func (h *AttendanceHandler) Status(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	status, err := h.attendance.Status(c.UserContext(), id)
	if err != nil {
		return err
	}

	data := fiber.Map{"is_clocked_in": status.Open}
	if status.Open {
		data["session"] = toAttendanceView(*status.Session)
		data["elapsed"] = status.Elapsed
		data["formatted_elapsed"] = status.Elapsed.String()
	}
	return ok(c, "attendance status", data)
}

// History supports start_date, end_date, min_hours, sort and order query parameters.
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	q, err := historyQuery(c)
	if err != nil {
		return err
	}

	list, err := h.attendance.History(c.UserContext(), id, q)
	if err != nil {
		return err
	}
	return ok(c, "attendance history", toAttendanceViews(list))
}
