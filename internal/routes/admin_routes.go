package routes

import (
	"employee-portal/internal/handler"
	"employee-portal/internal/middleware"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAdminRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	users := usecase.NewUserUsecase(repository.NewUserRepository(db), opts.Tokens)
	attendance := usecase.NewAttendanceUsecase(repository.NewAttendanceRepository(db), opts.Now)
	leaves := usecase.NewLeaveUsecase(repository.NewLeaveRepository(db), opts.Now)
	hdl := handler.NewAdminHandler(users, attendance, leaves)

	admin := app.Group("/api/admin", middleware.Auth(opts.Tokens), middleware.Role(model.RoleAdmin))
	admin.Get("/users", hdl.ListUsers)
	admin.Post("/users", hdl.CreateUser)
	admin.Patch("/users/:id/role", hdl.ChangeRole)
	admin.Get("/attendance", hdl.Attendance)
	admin.Get("/attendance/export", hdl.ExportAttendance)
	admin.Get("/leave/pending", hdl.PendingLeave)
	admin.Patch("/leave/:id", hdl.DecideLeave)
}
