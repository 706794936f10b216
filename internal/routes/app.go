package routes

import (
	"time"

	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/token"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type Options struct {
	Tokens         *token.Manager
	Now            usecase.Clock
	CORSOrigins    string
	RequestTimeout time.Duration
	LoginRateLimit int
}

// NewApp builds the Fiber app with global middleware and every route.
func NewApp(db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "employee-portal",
		ErrorHandler:          handler.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))
	if opts.RequestTimeout > 0 {
		app.Use(middleware.RequestContext(opts.RequestTimeout))
	}

	SetupSystemRoutes(app, db, opts)
	SetupAuthRoutes(app, db, opts)
	SetupAttendanceRoutes(app, db, opts)
	SetupLeaveRoutes(app, db, opts)
	SetupAdminRoutes(app, db, opts)
	return app
}

func SetupSystemRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	hdl := handler.NewSystemHandler(db, opts.Now)

	app.Get("/health", hdl.Health)
	app.Get("/api/time", hdl.Time)
}
