package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/tanujaya/user-directory/internal/http/handlers"
	httpMW "github.com/tanujaya/user-directory/internal/http/middleware"
	"github.com/tanujaya/user-directory/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	HealthHandler *httpH.HealthHandler
	UserHandler   *httpH.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.UserHandler != nil {
		r.GET("/users", cfg.UserHandler.List)
		r.POST("/users", cfg.UserHandler.Create)
		r.GET("/users/:id", cfg.UserHandler.Get)
		r.PUT("/users/:id", cfg.UserHandler.Update)
		r.DELETE("/users/:id", cfg.UserHandler.Delete)
	}

	return r
}
