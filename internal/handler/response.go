package handler

import (
	"errors"
	"strings"

	"employee-portal/internal/apperror"
	"employee-portal/internal/middleware"
	"employee-portal/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

var (
	errInvalidBody = apperror.Validation("invalid_body", "request body is not valid JSON")
	errNoIdentity  = apperror.Unauthorized("missing_identity", "authentication required")
)

type errorBody struct {
	Kind    apperror.Kind         `json:"kind"`
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []apperror.FieldError `json:"fields,omitempty"`
}

// ErrorHandler renders every error returned by a handler or middleware.
// Store failures are logged and never expose their cause.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, body := render(err)

	if status >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFrom(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.Status(status).JSON(body)
}

func render(err error) (int, errorBody) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := apperror.KindValidation
		switch {
		case fe.Code == fiber.StatusUnauthorized:
			kind = apperror.KindUnauthorized
		case fe.Code == fiber.StatusForbidden:
			kind = apperror.KindForbidden
		case fe.Code == fiber.StatusNotFound || fe.Code == fiber.StatusMethodNotAllowed:
			kind = apperror.KindNotFound
		case fe.Code == fiber.StatusConflict:
			kind = apperror.KindConflict
		case fe.Code >= fiber.StatusInternalServerError:
			kind = apperror.KindDependency
		}
		code := strings.ToLower(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_"))
		return fe.Code, errorBody{Kind: kind, Code: code, Message: fe.Message}
	}

	ae := apperror.From(err)
	body := errorBody{Kind: ae.Kind, Code: ae.Code, Message: ae.Message, Fields: ae.Fields}
	if ae.Kind == apperror.KindDependency && ae.Code == apperror.CodeDependencyFailure {
		body.Message = "internal server error"
	}
	return ae.Kind.HTTPStatus(), body
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody.Wrap(err)
	}
	return nil
}

func currentIdentity(c *fiber.Ctx) (token.Identity, error) {
	id, found := middleware.CurrentIdentity(c)
	if !found {
		return token.Identity{}, errNoIdentity
	}
	return id, nil
}
