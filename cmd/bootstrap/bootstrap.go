package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vet-clinic-analytics/config"
	deliveryHttp "vet-clinic-analytics/internal/delivery/http"
	"vet-clinic-analytics/internal/delivery/http/handler"
	"vet-clinic-analytics/internal/delivery/http/middleware"
	"vet-clinic-analytics/internal/infrastructure/cache"
	"vet-clinic-analytics/internal/infrastructure/database"
	"vet-clinic-analytics/internal/repository"
	"vet-clinic-analytics/internal/service"
	"vet-clinic-analytics/internal/usecase"
	"vet-clinic-analytics/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply reporting views and indexes when asked to
	if cfg.DB.RunMigrations {
		if err := database.RunMigrations(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	analyticsRepo := repository.NewAnalyticsRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases
	kpiUsecase := usecase.NewKPIUsecase(db, log, analyticsRepo)
	reportUsecase := usecase.NewReportUsecase(db, log, analyticsRepo, cfg.Report)

	// Initialize services
	kpiCache := service.NewKPICacheService(redisClient, log, cfg.Redis.KPICache)

	// Initialize handlers
	kpiHandler := handler.NewKPIHandler(kpiUsecase, kpiCache)
	reportHandler := handler.NewReportHandler(reportUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(kpiHandler, reportHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
