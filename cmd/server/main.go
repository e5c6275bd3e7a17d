package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumela/schoolsync-backend/internal/config"
	"github.com/lumela/schoolsync-backend/internal/database"
	"github.com/lumela/schoolsync-backend/internal/email"
	"github.com/lumela/schoolsync-backend/internal/export"
	"github.com/lumela/schoolsync-backend/internal/handler"
	"github.com/lumela/schoolsync-backend/internal/logger"
	"github.com/lumela/schoolsync-backend/internal/queue"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/lumela/schoolsync-backend/internal/router"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
	"github.com/lumela/schoolsync-backend/internal/websocket"
	"github.com/lumela/schoolsync-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SchoolSync Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	learnerRepo := repository.NewLearnerRepository(pool)
	parentRepo := repository.NewParentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	classRepo := repository.NewSchoolClassRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	permissionRepo := repository.NewPermissionRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	recipientRepo := repository.NewRecipientRepository(pool)
	importRepo := repository.NewImportRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Absence Notice Outbox ─────────────────────────────────────────
	// The outbox lives in Redis so notices survive restarts and every
	// instance feeds the same delivery worker.
	outbox := queue.NewRedis(rdb, config.WorkerKey.AbsenceNoticeQueue)

	// ─── Email Sender ──────────────────────────────────────────────────
	var sender email.Sender
	if cfg.SendGridKey != "" {
		sender = email.NewSendGridSender(cfg.SendGridKey, cfg.SchoolName, cfg.FromEmail)
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set, emails will be printed to console")
		sender = email.NewConsoleSender(log)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	exporter := export.NewService(cfg.ExportDir)
	announcer := websocket.NewMonitorAnnouncer(rdb, log)

	authService := service.NewAuthService(cfg, rdb)
	learnerService := service.NewLearnerService(learnerRepo)
	parentService := service.NewParentService(parentRepo, log)
	teacherService := service.NewTeacherService(teacherRepo)
	classService := service.NewSchoolClassService(classRepo)
	eventService := service.NewEventService(eventRepo)
	permissionService := service.NewPermissionService(permissionRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, settingRepo, outbox, exporter, announcer, log)
	recipientService := service.NewRecipientService(recipientRepo, log)
	importService := service.NewLearnerImportService(importRepo, log)
	staffService := service.NewStaffService(staffRepo, authService)
	roleService := service.NewRoleService(roleRepo)
	settingService := service.NewSettingService(settingRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(staffService, authService),
		Learner:    handler.NewLearnerHandler(learnerService),
		Parent:     handler.NewParentHandler(parentService),
		Teacher:    handler.NewTeacherHandler(teacherService),
		Class:      handler.NewSchoolClassHandler(classService),
		Event:      handler.NewEventHandler(eventService),
		Permission: handler.NewPermissionHandler(permissionService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Recipient:  handler.NewRecipientHandler(recipientService),
		Import:     handler.NewImportHandler(importService),
		Staff:      handler.NewStaffHandler(staffService),
		Role:       handler.NewRoleHandler(roleService),
		Setting:    handler.NewSettingHandler(settingService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	notificationWorker := worker.NewNotificationWorker(outbox, sender, cfg.SchoolName, cfg.NoticeMaxAttempts, log)
	go notificationWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the delivery worker and let in-flight notices finish.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
