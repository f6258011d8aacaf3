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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/config"
	"github.com/edumarket/elearn-api/internal/database"
	"github.com/edumarket/elearn-api/internal/handler"
	"github.com/edumarket/elearn-api/internal/middleware"
	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
	"github.com/edumarket/elearn-api/internal/router"
	"github.com/edumarket/elearn-api/internal/service"
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
		&models.PlatformState{},
		&models.StudentProfile{},
		&models.InstructorProfile{},
		&models.Course{},
		&models.Enrollment{},
		&models.DiscussionPost{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	platformRepo := repository.NewPlatformRepository(db)
	if err := platformRepo.Ensure(context.Background(), cfg.OwnerAccount, cfg.PlatformFee); err != nil {
		log.Fatalf("failed to seed platform state: %v", err)
	}

	// Redis and NATS are optional; without them caching and event fan-out
	// degrade to no-ops.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, course caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, event fan-out limited to redis")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentProfileRepository(db)
	instructorRepo := repository.NewInstructorProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)

	events := service.NewLedgerEventPublisher(redisClient, natsConn, cfg.EventChannel, logger)

	profileService := service.NewProfileService(db, platformRepo, studentRepo, instructorRepo, validate, logger)
	courseService := service.NewCourseService(db, platformRepo, courseRepo, instructorRepo, redisClient, cfg.CourseCacheTTL, events, validate, logger)
	enrollmentService := service.NewEnrollmentService(db, platformRepo, studentRepo, instructorRepo, courseRepo, enrollmentRepo, redisClient, events, validate, logger)
	settlementService := service.NewSettlementService(db, platformRepo, instructorRepo, events, validate, logger)
	discussionService := service.NewDiscussionService(db, platformRepo, enrollmentRepo, discussionRepo, validate, logger)
	platformService := service.NewPlatformService(db, platformRepo, validate, logger)

	profileHandler := handler.NewProfileHandler(profileService, logger)
	courseHandler := handler.NewCourseHandler(courseService, logger)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService, logger)
	discussionHandler := handler.NewDiscussionHandler(discussionService, logger)
	financialHandler := handler.NewFinancialHandler(settlementService, logger)
	platformHandler := handler.NewPlatformHandler(platformService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ProfileHandler:    profileHandler,
		CourseHandler:     courseHandler,
		EnrollmentHandler: enrollmentHandler,
		DiscussionHandler: discussionHandler,
		FinancialHandler:  financialHandler,
		PlatformHandler:   platformHandler,
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
