package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"payease.backend/internal/config"
	"payease.backend/internal/infrastructure/bankcheck"
	"payease.backend/internal/infrastructure/jobs"
	"payease.backend/internal/infrastructure/models"
	"payease.backend/internal/infrastructure/notifications"
	"payease.backend/internal/infrastructure/repositories"
	"payease.backend/internal/interfaces/http/handlers"
	"payease.backend/internal/interfaces/http/middleware"
	"payease.backend/internal/usecases"
	"payease.backend/pkg/logger"
	"payease.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	// Initialize repositories
	verificationRepo := repositories.NewVerificationRepository(db)
	blacklistRepo := repositories.NewBlacklistRepository(sqlDB)
	otpStore := redis.NewOTPStore()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL")
		if err := db.AutoMigrate(&models.MerchantVerification{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		if err := blacklistRepo.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("failed to ensure blacklist schema: %w", err)
		}
		if err := blacklistRepo.Seed(context.Background()); err != nil {
			return fmt.Errorf("failed to seed blacklist: %w", err)
		}
	}

	// Initialize collaborators
	bankClient := bankcheck.NewClient(cfg.Verification)
	notifier := notifications.NewLogNotifier()

	var codeSender notifications.CodeSender
	if cfg.Notification.SMSEnabled {
		sender, err := notifications.NewTwilioCodeSender(cfg.Notification)
		if err != nil {
			return fmt.Errorf("failed to initialize Twilio sender: %w", err)
		}
		codeSender = sender
	} else {
		codeSender = notifications.NewLogCodeSender()
	}

	// Initialize usecases
	checkEngine := usecases.NewCheckEngine(blacklistRepo, bankClient, cfg.Verification.PennyDropTimeout)
	verificationUsecase := usecases.NewVerificationUsecase(verificationRepo, checkEngine)
	adminUsecase := usecases.NewAdminUsecase(verificationRepo, blacklistRepo, notifier)
	otpUsecase := usecases.NewOTPUsecase(otpStore, codeSender, cfg.OTP.Expiry, cfg.OTP.MaxAttempts)

	// Initialize handlers
	verificationHandler := handlers.NewVerificationHandler(verificationUsecase)
	otpHandler := handlers.NewOTPHandler(otpUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, verificationUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	digestJob := jobs.NewPendingReviewDigestJob(verificationRepo)
	go digestJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		verificationHandler: verificationHandler,
		otpHandler:          otpHandler,
		adminHandler:        adminHandler,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		digestJob.Stop()
		cancel()
	}()

	log.Printf("PayEase verification backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
