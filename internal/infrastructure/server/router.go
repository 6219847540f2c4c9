package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/credential-service/internal/adapter/handler"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/observability"
)

type Router struct {
	engine        *gin.Engine
	authHandler   *handler.AuthHandler
	healthHandler *handler.HealthHandler
	metrics       *observability.Metrics
	logger        *zap.Logger
}

type RouterConfig struct {
	AuthHandler   *handler.AuthHandler
	HealthHandler *handler.HealthHandler
	Metrics       *observability.Metrics
	Logger        *zap.Logger
	Environment   string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:        engine,
		authHandler:   cfg.AuthHandler,
		healthHandler: cfg.HealthHandler,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.healthHandler.Live)
	r.engine.GET("/health/ready", r.healthHandler.Ready)

	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	user := r.engine.Group("/api/user")
	user.Use(middleware.AllowMethods(http.MethodPost))
	{
		user.Any("/signup", r.authHandler.Register)
		user.Any("/signin", r.authHandler.SignIn)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
