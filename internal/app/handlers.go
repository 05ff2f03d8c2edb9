package app

import (
	"github.com/gin-gonic/gin"

	httpx "github.com/tanujaya/user-directory/internal/http"
	httpH "github.com/tanujaya/user-directory/internal/http/handlers"
	"github.com/tanujaya/user-directory/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	User   *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		User:   httpH.NewUserHandler(s.Directory),
	}
}

func wireRouter(cfg *Config, log *logger.Logger, handlers Handlers) *gin.Engine {
	return httpx.NewRouter(httpx.RouterConfig{
		Log:           log,
		ServiceName:   cfg.ServiceName,
		CORSOrigins:   cfg.CORSOrigins,
		HealthHandler: handlers.Health,
		UserHandler:   handlers.User,
	})
}
