package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/petukhovtd/account-service/internal/infra/config"
	"github.com/petukhovtd/account-service/internal/transport/http/handlers"
	"github.com/petukhovtd/account-service/internal/transport/http/middleware"
	"github.com/petukhovtd/account-service/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Users    *usecase.UserService
	Sessions *usecase.SessionService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	basicAuth := middleware.RequireBasicAuth(deps.Services.Users)

	api := r.Group("/api/v1")
	{
		userHandler := handlers.NewUserHandler(deps.Services.Users, deps.Logger)
		userHandler.RegisterRoutes(api.Group("/user"), basicAuth)

		sessionHandler := handlers.NewSessionHandler(deps.Services.Sessions, deps.Logger)
		sessionHandler.RegisterRoutes(api.Group("/session"), basicAuth)
	}

	return r
}
