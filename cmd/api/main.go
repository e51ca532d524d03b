// Package main is the entry point for the timetable solver API server.
//
// @title Timetable Solver API
// @version 1.0
// @description Weekly school-timetable generation backed by a CP-SAT solver
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AloneRunner/DersTimeTable/internal/middleware"
	"github.com/AloneRunner/DersTimeTable/internal/modules/auth"
	authstore "github.com/AloneRunner/DersTimeTable/internal/modules/auth/jsonstore"
	"github.com/AloneRunner/DersTimeTable/internal/modules/catalog"
	catalogstore "github.com/AloneRunner/DersTimeTable/internal/modules/catalog/jsonstore"
	"github.com/AloneRunner/DersTimeTable/internal/modules/schedule"
	schedulestore "github.com/AloneRunner/DersTimeTable/internal/modules/schedule/jsonstore"
	"github.com/AloneRunner/DersTimeTable/internal/modules/subscription"
	substore "github.com/AloneRunner/DersTimeTable/internal/modules/subscription/jsonstore"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/config"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database"
	apperrors "github.com/AloneRunner/DersTimeTable/internal/pkg/errors"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/logger"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/response"
	svcauth "github.com/AloneRunner/DersTimeTable/internal/services/auth"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("useDatabase", cfg.UseDatabase),
	)

	var db *gorm.DB
	if cfg.UseDatabase {
		conn, err := database.New(database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.Name,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		db = conn.DB()
		log.Info("database connected")
	} else {
		log.Info("no DATABASE_URL set, using JSON file storage", zap.String("path", cfg.JSONStorePath))
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, log, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("address", addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
			if err := srv.Close(); err != nil {
				return fmt.Errorf("forced shutdown error: %w", err)
			}
		}

		log.Info("server stopped gracefully")
	}

	return nil
}

func setupRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB) *gin.Engine {
	router := gin.New()

	// === Global middleware (order matters) ===
	corsConfig := middleware.DefaultCORSConfig()
	if cfg.App.IsProduction() {
		corsConfig = middleware.ProductionCORSConfig([]string{})
	}
	router.Use(middleware.CORS(corsConfig))
	router.Use(middleware.RequestIDDefault())
	router.Use(middleware.RecoveryDefault(log))
	router.Use(middleware.LoggingDefault(log))
	router.Use(apperrors.Handler(log))
	router.Use(middleware.RateLimitDefault())

	router.GET("/health", healthHandler)
	router.GET("/ready", readyHandler)

	jwtService := svcauth.NewJWTService(svcauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessExpiresIn,
		RefreshTTL: cfg.JWT.RefreshExpiresIn,
	})

	var (
		catalogStore      catalog.Store
		scheduleStore     schedule.Store
		authStore         auth.Store
		subscriptionStore subscription.Store
	)
	if cfg.UseDatabase {
		catalogStore = catalog.NewRepository(db)
		scheduleStore = schedule.NewRepository(db)
		authStore = auth.NewRepository(db)
		subscriptionStore = subscription.NewRepository(db)
	} else {
		catalogStore = catalogstore.New(cfg.JSONStorePath)
		scheduleStore = schedulestore.New(cfg.JSONStorePath)
		authStore = authstore.New(cfg.JSONStorePath)
		subscriptionStore = substore.New(cfg.JSONStorePath)
	}

	catalogService := catalog.NewService(catalogStore)
	scheduleService := schedule.NewService(scheduleStore, catalogService, cfg.Solver.DefaultTimeLimitSeconds)
	authService := auth.NewService(authStore, jwtService)
	subscriptionService := subscription.NewService(subscriptionStore)

	catalogHandler := catalog.NewHandler(catalogService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	authHandler := auth.NewHandler(authService, jwtService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	generateRateLimit := middleware.RateLimitByTenant(5, time.Minute)
	generateGate := subscription.RequireActive(subscriptionService)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		public.GET("/ping", pingHandler)
		public.Use(middleware.TenantRequired())
		authHandler.RegisterRoutes(public)

		protected := v1.Group("")
		protected.Use(middleware.TenantRequired())
		protected.Use(middleware.AuthRequired(jwtService))

		catalogHandler.RegisterRoutes(protected)
		scheduleHandler.RegisterRoutes(protected, generateRateLimit, generateGate)
		subscriptionHandler.RegisterRoutes(protected)
	}

	return router
}

// HealthResponse is the JSON body returned by the health/ready probes.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func healthHandler(c *gin.Context) {
	response.OK(c, HealthResponse{Status: "healthy", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func readyHandler(c *gin.Context) {
	response.OK(c, HealthResponse{Status: "ready", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func pingHandler(c *gin.Context) {
	response.OK(c, gin.H{"message": "pong"})
}
