package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"github.com/hesab/backend/internal/interfaces/http/handler"
	"github.com/hesab/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig contains everything NewEngine mounts besides the API routes
type EngineConfig struct {
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	TrustedProxies []string

	// RateLimiter throttles every request per client; nil disables it
	RateLimiter *middleware.RateLimiter

	Tracing middleware.TracingConfig

	// Metrics records HTTP metrics and serves MetricsPath; nil disables both
	Metrics     *metrics.Metrics
	MetricsPath string

	Swagger middleware.SwaggerConfig
	// SwaggerAuth authenticates /swagger when Swagger.RequireAuth is set
	SwaggerAuth gin.HandlerFunc

	Health *handler.HealthHandler
}

// NewEngine creates the gin engine with the global middleware chain and the
// unversioned endpoints: /health, the metrics path and /swagger.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	if cfg.Tracing.Enabled {
		engine.Use(middleware.TracingWithConfig(cfg.Tracing))
		engine.Use(middleware.TracingAttributeInjector())
	}
	if cfg.Metrics != nil {
		engine.Use(middleware.HTTPMetrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	if cfg.Health != nil {
		engine.GET("/health", cfg.Health.Health)
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(cfg.Metrics.Handler()))
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, cfg.SwaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	return engine, nil
}

// Mount registers the API route groups on engine under /api/v1
func Mount(engine *gin.Engine, groups []*DomainGroup) *Router {
	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()
	return r
}
