package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/asistencia-api/internal/application/attendance"
	"github.com/jhoicas/asistencia-api/internal/application/auth"
	"github.com/jhoicas/asistencia-api/internal/application/backup"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/asistencia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/asistencia-api/internal/interfaces/http"
	"github.com/jhoicas/asistencia-api/pkg/config"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Bool("geofence_enforce", cfg.Attendance.EnforceGeofence).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	eventRepo := postgres.NewClockEventRepository(pool)
	workplaceRepo := postgres.NewWorkplaceRepository(pool)
	backupStore := postgres.NewBackupStore(pool)

	defaults := entity.WorkplaceConfig{
		Latitude:             cfg.Attendance.DefaultLatitude,
		Longitude:            cfg.Attendance.DefaultLongitude,
		AllowedRadiusMeters:  cfg.Attendance.DefaultRadiusMeters,
		StandardWorkdayHours: cfg.Attendance.DefaultWorkdayHours,
	}
	enforce := cfg.Attendance.EnforceGeofence

	workplaceUC := usecase.NewWorkplaceUseCase(workplaceRepo, defaults, enforce, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	if _, err := userUC.EnsureAdmin(ctx, usecase.BootstrapAdmin{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		log.Fatal().Err(err).Msg("administrador inicial")
	}
	clockUC := attendance.NewClockUseCase(eventRepo, userRepo, workplaceUC, enforce, loc, log)

	// Exportaciones de la hoja de tiempos, por formato.
	renderers := map[string]attendance.TimesheetRenderer{
		"xlsx": spreadsheet.NewTimesheetRenderer(),
		"pdf":  infrapdf.NewTimesheetRenderer(),
	}
	timesheetUC := attendance.NewTimesheetUseCase(eventRepo, userRepo, workplaceUC, renderers, cfg.Attendance.LateHour, loc, log)
	backupUC := backup.NewUseCase(userRepo, eventRepo, backupStore, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		ExpMinutes:         cfg.JWT.Expiration,
		RememberExpMinutes: cfg.JWT.RememberExpiration,
		Issuer:             cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 << 20,
	})
	app.Use(recover.New())
	app.Use(log.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Asistencia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		WorkplaceUC: workplaceUC,
		ClockUC:     clockUC,
		TimesheetUC: timesheetUC,
		BackupUC:    backupUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
