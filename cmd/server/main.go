package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	calendarapp "github.com/organizer/backend/internal/application/calendar"
	financeapp "github.com/organizer/backend/internal/application/finance"
	organizerapp "github.com/organizer/backend/internal/application/organizer"
	settingsapp "github.com/organizer/backend/internal/application/settings"
	"github.com/organizer/backend/internal/infrastructure/auth"
	"github.com/organizer/backend/internal/infrastructure/cache"
	"github.com/organizer/backend/internal/infrastructure/config"
	"github.com/organizer/backend/internal/infrastructure/logger"
	"github.com/organizer/backend/internal/infrastructure/persistence"
	"github.com/organizer/backend/internal/infrastructure/telemetry"
	"github.com/organizer/backend/internal/interfaces/http/handler"
	"github.com/organizer/backend/internal/interfaces/http/middleware"
	"github.com/organizer/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting organizer backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	// Distributed tracing. A disabled config yields a no-op provider, so
	// the rest of the wiring is unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := telemetry.RegisterGormTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Settings cache is optional: if Redis is unreachable the service
	// falls back to hitting the database on every flag check.
	var settingsCache settingsapp.Cache
	sc, err := cache.NewSettingsCache(cfg.Redis, cfg.Cache.SettingsTTL, log)
	if err != nil {
		log.Warn("Settings cache unavailable, running without it", zap.Error(err))
	} else {
		settingsCache = sc
		defer func() {
			_ = sc.Close()
		}()
	}

	// Repositories
	eventRepo := persistence.NewGormEventRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	todoRepo := persistence.NewGormTodoRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	planRepo := persistence.NewGormInstallmentPlanRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	goalRepo := persistence.NewGormSavingsGoalRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Application services
	eventService := calendarapp.NewEventService(eventRepo)
	noteService := organizerapp.NewNoteService(noteRepo)
	todoService := organizerapp.NewTodoService(todoRepo)
	tagService := organizerapp.NewTagService(tagRepo)
	recordService := financeapp.NewRecordService(expenseRepo, incomeRepo, investmentRepo, categoryRepo)
	installmentService := financeapp.NewInstallmentService(planRepo)
	budgetService := financeapp.NewBudgetService(budgetRepo, goalRepo, expenseRepo)
	settingsService := settingsapp.NewService(settingsRepo, settingsCache)

	// Token issuance and identity resolution
	jwtService := auth.NewJWTService(cfg.Auth)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, tracing,
	// request logging, security headers, CORS, body limit, rate limit, auth.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	authConfig := middleware.DefaultAuthConfig(jwtService)
	authConfig.Logger = log
	engine.Use(middleware.AuthWithConfig(authConfig))

	// Handlers
	healthHandler := handler.NewHealthHandler(db.DB, cfg.App.Name, version)
	authHandler := handler.NewAuthHandler(jwtService)
	eventHandler := handler.NewEventHandler(eventService)
	noteHandler := handler.NewNoteHandler(noteService)
	todoHandler := handler.NewTodoHandler(todoService)
	tagHandler := handler.NewTagHandler(tagService)
	recordHandler := handler.NewRecordHandler(recordService)
	installmentHandler := handler.NewInstallmentHandler(installmentService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Routes. Finance handlers sit behind the per-user feature gate.
	financeGate := middleware.RequireFinance(settingsService, log)
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(healthHandler).
		Register(authHandler).
		Register(eventHandler).
		Register(noteHandler).
		Register(todoHandler).
		Register(tagHandler).
		Register(settingsHandler).
		RegisterWithMiddleware(recordHandler, financeGate).
		RegisterWithMiddleware(installmentHandler, financeGate).
		RegisterWithMiddleware(budgetHandler, financeGate)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
