package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/hesab/backend/internal/application/identity"
	ledgerapp "github.com/hesab/backend/internal/application/ledger"
	voucherapp "github.com/hesab/backend/internal/application/voucher"
	"github.com/hesab/backend/internal/infrastructure/auth"
	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/hesab/backend/internal/infrastructure/event"
	"github.com/hesab/backend/internal/infrastructure/export"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"github.com/hesab/backend/internal/infrastructure/migration"
	"github.com/hesab/backend/internal/infrastructure/persistence"
	"github.com/hesab/backend/internal/infrastructure/telemetry"
	"github.com/hesab/backend/internal/interfaces/http/handler"
	"github.com/hesab/backend/internal/interfaces/http/middleware"
	"github.com/hesab/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Hesab API
//	@version		1.0
//	@description	Bookkeeping backend: first-run setup, onboarding, ledger accounts and transactions, dashboard statistics and balanced journal vouchers.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting Hesab backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log,
		telemetry.WithServiceVersion(version),
		telemetry.WithEnvironment(cfg.App.Env),
	)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := migrate(&cfg.Database, log); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:        telemetry.DBSystemFor(db.Driver),
		SlowQueryThresh: 200 * time.Millisecond,
		LogQueryParams:  !cfg.App.IsProduction(),
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	eventBus := event.NewInMemoryEventBus(log)
	event.RegisterHandlers(eventBus, log, m)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	blacklist, err := auth.NewTokenBlacklist(cfg)
	if err != nil {
		log.Fatal("Failed to create token blacklist", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	setupRepo := persistence.NewGormSetupRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)

	// Application services
	var recorder identityapp.LoginRecorder
	if m != nil {
		recorder = m
	}
	authService := identityapp.NewAuthService(userRepo, companyRepo, jwtService, blacklist, recorder,
		identityapp.AuthServiceConfigFrom(cfg.Auth), log)
	setupService := identityapp.NewSetupService(setupRepo, companyRepo, eventBus, log)
	onboardingService := identityapp.NewOnboardingService(userRepo, companyRepo, eventBus, log)
	accountService := ledgerapp.NewAccountService(accountRepo, log)
	transactionService := ledgerapp.NewTransactionService(transactionRepo, accountRepo)
	statsService := ledgerapp.NewStatsService(accountRepo, transactionRepo)
	voucherService := voucherapp.NewVoucherService(voucherRepo, companyRepo, eventBus,
		export.NewVoucherExporter(log, cfg.App.RightToLeft()), log)

	authenticate := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	defer loginLimiter.Stop()

	var globalLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		globalLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer globalLimiter.Stop()
	}

	engine, err := router.NewEngine(engineConfig(cfg, log, m, globalLimiter, authenticate, handler.NewHealthHandler(db)))
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	r := router.Mount(engine, router.APIRoutes(router.Handlers{
		Setup:        handler.NewSetupHandler(setupService),
		Auth:         handler.NewAuthHandler(authService),
		Onboarding:   handler.NewOnboardingHandler(onboardingService),
		Accounts:     handler.NewAccountHandler(accountService),
		Transactions: handler.NewTransactionHandler(transactionService),
		Stats:        handler.NewStatsHandler(statsService),
		Vouchers:     handler.NewVoucherHandler(voucherService),
		System:       handler.NewSystemHandler(version),
	}, router.Guards{
		Authenticate: authenticate,
		Ready:        middleware.RequireReady(onboardingService, log),
		LoginLimit:   middleware.RateLimit(loginLimiter),
	}))
	log.Info("Routes mounted", zap.String("base_path", r.BasePath()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrate applies the embedded scripts over a separate connection, before
// gorm opens the database.
func migrate(cfg *config.DatabaseConfig, log *zap.Logger) error {
	m, err := migration.FromConfig(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

func engineConfig(
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	limiter *middleware.RateLimiter,
	authenticate gin.HandlerFunc,
	health *handler.HealthHandler,
) router.EngineConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.App.IsProduction()

	return router.EngineConfig{
		Logger:         log,
		CORS:           cors,
		Security:       security,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RateLimiter:    limiter,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
		Swagger: middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
		},
		SwaggerAuth: authenticate,
		Health:      health,
	}
}
