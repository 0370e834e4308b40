package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/attendance"
	"github.com/jhoicas/asistencia-api/internal/application/auth"
	"github.com/jhoicas/asistencia-api/internal/application/backup"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	WorkplaceUC *usecase.WorkplaceUseCase
	ClockUC     *attendance.ClockUseCase
	TimesheetUC *attendance.TimesheetUseCase
	BackupUC    *backup.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	workplaceHandler := NewWorkplaceHandler(deps.WorkplaceUC)
	clockHandler := NewClockHandler(deps.ClockUC)
	timesheetHandler := NewTimesheetHandler(deps.TimesheetUC)
	backupHandler := NewBackupHandler(deps.BackupUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/password", authHandler.ChangePassword)

	clock := protected.Group("/clock")
	clock.Post("/punch", clockHandler.Punch)
	clock.Get("/today", clockHandler.Today)

	protected.Get("/timesheet", timesheetHandler.Query)
	protected.Get("/timesheet/export", timesheetHandler.Export)
	protected.Get("/dashboard/summary", timesheetHandler.Summary)

	protected.Get("/workplace", workplaceHandler.Get)
	protected.Post("/geofence/check", workplaceHandler.Check)

	// Solo administradores
	adminOnly := RequireRole(entity.RoleAdmin)
	protected.Put("/workplace", adminOnly, workplaceHandler.Save)

	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/password-reset", userHandler.ResetPassword)

	admin := protected.Group("/admin", adminOnly)
	admin.Post("/events", clockHandler.CreateManual)
	admin.Put("/events/:id", clockHandler.UpdateEvent)
	admin.Delete("/events/:id", clockHandler.DeleteEvent)
	admin.Get("/backup", backupHandler.Export)
	admin.Post("/backup", backupHandler.Import)
}
