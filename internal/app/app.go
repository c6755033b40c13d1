package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/config"
	"github.com/mesametamaarkhan/theekkardo/internal/email"
	"github.com/mesametamaarkhan/theekkardo/internal/handlers"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/middleware"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/push"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/routes"
	"github.com/mesametamaarkhan/theekkardo/internal/services"
	"github.com/mesametamaarkhan/theekkardo/internal/validator"
	"github.com/mesametamaarkhan/theekkardo/internal/workers"
)

// Run loads configuration, connects the database and starts the HTTP
// server. It blocks until the server exits.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.ServiceRequest{},
		&models.Bid{},
		&models.Notification{},
		&models.Review{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	requestWorker := workers.NewRequestWorker(
		repositories.NewRequestRepository(gormDB),
		time.Duration(cfg.Worker.StaleRequestMaxAgeHours)*time.Hour,
	)
	requestWorker.Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine with all dependencies wired.
// Split out from Run so tests can exercise the real routing table.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	serviceRepo := repositories.NewServiceRepository(gormDB)
	requestRepo := repositories.NewRequestRepository(gormDB)
	bidRepo := repositories.NewBidRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)

	var pushSender push.Sender = push.NopSender{}
	if cfg.Push.Enabled {
		snsSender, err := push.NewSNSSender(context.Background(), cfg.Push.Region)
		if err != nil {
			logger.Fatal("Failed to initialize push sender", "error", err)
		}
		pushSender = snsSender
		logger.Info("Push sender initialized", "region", cfg.Push.Region)
	} else {
		logger.Warn("Push delivery disabled, notifications persist only")
	}

	var mailer email.Sender = email.NopSender{}
	if cfg.Email.Enabled {
		mailer = email.NewSMTPSender(cfg)
		logger.Info("Email sender initialized", "host", cfg.Email.SMTPHost)
	}

	notificationService := services.NewNotificationService(
		notificationRepo,
		userRepo,
		pushSender,
		mailer,
		time.Duration(cfg.Push.TimeoutSeconds)*time.Second,
	)

	return &services.ServiceContainer{
		RequestService:      services.NewRequestService(requestRepo, userRepo, serviceRepo, notificationService),
		BidService:          services.NewBidService(bidRepo, requestRepo, userRepo, serviceRepo, notificationService),
		NotificationService: notificationService,
		CatalogService:      services.NewCatalogService(serviceRepo),
		ReviewService:       services.NewReviewService(reviewRepo, requestRepo, userRepo),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	return ginRouter
}
