package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/repository"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLeaveRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	repo := repository.NewLeaveRepository(db)
	hdl := handler.NewLeaveHandler(usecase.NewLeaveUsecase(repo, opts.Now))

	api := app.Group("/api/leave", middleware.Auth(opts.Tokens))
	api.Post("/request", hdl.Request)
	api.Get("/history", hdl.History)
	api.Delete("/:id", hdl.Cancel)
}
