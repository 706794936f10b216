package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/repository"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	repo := repository.NewUserRepository(db)
	users := usecase.NewUserUsecase(repo, opts.Tokens)
	hdl := handler.NewAuthHandler(users)

	// Public
	app.Post("/api/register", hdl.Register)
	if opts.LoginRateLimit > 0 {
		app.Post("/api/login", middleware.LoginRateLimiter(opts.LoginRateLimit), hdl.Login)
	} else {
		app.Post("/api/login", hdl.Login)
	}

	// Protected
	app.Get("/api/me", middleware.Auth(opts.Tokens), hdl.Me)
}
