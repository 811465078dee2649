package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospitron/config"
	deliveryHttp "hospitron/internal/delivery/http"
	"hospitron/internal/delivery/http/handler"
	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/domain/entity"
	domainRepo "hospitron/internal/domain/repository"
	"hospitron/internal/infrastructure/api"
	"hospitron/internal/infrastructure/cache"
	"hospitron/internal/infrastructure/database"
	"hospitron/internal/repository"
	"hospitron/internal/service"
	"hospitron/internal/usecase"
	"hospitron/pkg/jwt"
	"hospitron/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	ListViews   usecase.AppointmentListUsecase
}

// New creates a new App instance with all dependencies initialized
func New(configFile string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	// Initialize database and run migrations
	if err := database.RunMigrations(cfg.DB, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis when it backs the session store
	if cfg.Session.Store == "redis" {
		redisClient, err := cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
	}

	// Initialize all layers
	server, listViews, err := initializeServer(cfg, log, db, app.RedisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server
	app.ListViews = listViews

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, usecase.AppointmentListUsecase, error) {
	loc := cfg.App.Location()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.Expiry)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize the backend client
	var clientOpts []api.Option
	if cfg.API.ForwardToken {
		clientOpts = append(clientOpts, api.WithTokenSource(middleware.GetToken))
	}
	apiClient := api.NewClient(cfg.API, log, clientOpts...)

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(apiClient, log, loc)
	auditLogRepo := repository.NewAuditLogRepository()

	var sessionRepo domainRepo.SessionRepository
	if redisClient != nil {
		sessionRepo = repository.NewRedisSessionRepository(redisClient)
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
	}

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	verifier, err := service.NewDemoCredentialVerifier(cfg.DemoUser)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize credential verifier: %w", err)
	}

	// Initialize usecases
	listUsecase := usecase.NewAppointmentListUsecase(appointmentRepo, log, loc, cfg.App.ViewIdleTimeout,
		func(sessionID string, a entity.Appointment) {
			log.WithFields(logrus.Fields{
				"session_id":     sessionID,
				"appointment_id": a.AppointmentID,
			}).Info("Appointment selected")
		})
	authUsecase := usecase.NewAuthUsecase(log, verifier, sessionRepo, jwtService, auditService, listUsecase)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, auditService)
	dashboardUsecase := usecase.NewDashboardUsecase(log, appointmentRepo, loc)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase, log, cfg.Session.CookieName)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigins)
	loggerMiddleware := middleware.NewLoggerMiddleware(log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, authMiddleware, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	loginHint := ""
	if cfg.App.Env != "production" {
		loginHint = fmt.Sprintf("%s / %s", cfg.DemoUser.Email, cfg.DemoUser.Password)
	}
	pageHandler, err := handler.NewPageHandler(log, authUsecase, dashboardUsecase, listUsecase, authMiddleware, customValidator, loginHint)
	if err != nil {
		listUsecase.Stop()
		return nil, nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		dashboardHandler,
		auditLogHandler,
		pageHandler,
		authMiddleware,
		corsMiddleware,
		loggerMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, listUsecase, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		logrus.Infof("Appointments backend: %s", app.Config.API.BaseURL)
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
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.ListViews != nil {
		app.ListViews.Stop()
	}

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
