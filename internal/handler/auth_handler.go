package handler

import (
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	users *usecase.UserUsecase
}

func NewAuthHandler(users *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input usecase.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.users.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "user registered successfully", user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input usecase.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	res, err := h.users.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "login successful",
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"role":       res.User.Role,
		"username":   res.User.Username,
		"email":      res.User.Email,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Me(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "profile loaded", user)
}
