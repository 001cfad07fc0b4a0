package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/config"
	"github.com/clubpulse/clubpulse-api/internal/database"
	"github.com/clubpulse/clubpulse-api/internal/handler"
	"github.com/clubpulse/clubpulse-api/internal/middleware"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/repository"
	"github.com/clubpulse/clubpulse-api/internal/router"
	"github.com/clubpulse/clubpulse-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Meeting{},
		&models.Evaluation{},
		&models.AhUmReport{},
		&models.GrammarianReport{},
		&models.TimerReport{},
		&models.GeneralEvaluatorReport{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	meetingRepo := repository.NewMeetingRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	liveFeed := service.NewLiveFeed(logger)

	meetingService := service.NewMeetingService(meetingRepo, evaluationRepo, redisClient, time.Minute, validate, logger, cfg.BaseURL, cfg.TodayWindowDays)
	evaluationService := service.NewEvaluationService(evaluationRepo, meetingRepo, redisClient, liveFeed, validate, logger)
	reportService := service.NewReportService(reportRepo, meetingRepo, liveFeed, validate, logger)
	adminService := service.NewAdminService(meetingRepo, evaluationRepo, redisClient, cfg.SummaryCacheTTL, logger)
	authService := service.NewAuthService(cfg.AdminPassword, cfg.JWTSecret, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		MeetingHandler:    handler.NewMeetingHandler(meetingService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, logger),
		LiveHandler:       handler.NewLiveHandler(liveFeed, meetingService, logger),
		AdminHandler:      handler.NewAdminHandler(adminService, logger),
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
