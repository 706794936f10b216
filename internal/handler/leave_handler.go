package handler

import (
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type LeaveHandler struct {
	leaves *usecase.LeaveUsecase
}

func NewLeaveHandler(leaves *usecase.LeaveUsecase) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

func (h *LeaveHandler) Request(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input usecase.SubmitLeaveInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	l, err := h.leaves.Submit(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return created(c, "leave request submitted successfully", l)
}

func (h *LeaveHandler) History(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.leaves.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "leave history", list)
}

func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	if err := h.leaves.Cancel(c.UserContext(), id, c.Params("id")); err != nil {
		return err
	}
	return ok(c, "leave request deleted successfully", nil)
}
