package handler

import (
	"time"

	"employee-portal/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SystemHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSystemHandler(db *gorm.DB, now func() time.Time) *SystemHandler {
	if now == nil {
		now = time.Now
	}
	return &SystemHandler{db: db, now: now}
}

// Time reports the server clock, which is the one attendance uses.
func (h *SystemHandler) Time(c *fiber.Ctx) error {
	now := h.now()
	return c.JSON(fiber.Map{
		"time":        now.UTC().Format(time.RFC3339Nano),
		"timestamp":   now.UnixMilli(),
		"timezone":    now.Location().String(),
		"date":        now.Format("Monday, January 2, 2006"),
		"time_string": now.Format("15:04:05"),
	})
}

func (h *SystemHandler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return apperror.Dependency("database ping", err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
