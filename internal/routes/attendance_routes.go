package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/repository"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	repo := repository.NewAttendanceRepository(db)
	hdl := handler.NewAttendanceHandler(usecase.NewAttendanceUsecase(repo, opts.Now))

	api := app.Group("/api/attendance", middleware.Auth(opts.Tokens))
	api.Post("/clock-in", hdl.ClockIn)
	api.Post("/clock-out", hdl.ClockOut)
	api.Get("/status", hdl.Status)
	api.Get("/history", hdl.History)
}
