package app

import (
	httpserver "github.com/yungbote/dopebook-backend/internal/http"
	"github.com/yungbote/dopebook-backend/internal/observability"
	"github.com/yungbote/dopebook-backend/internal/platform/config"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg config.Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *httpserver.Server {
	serviceName := ""
	if cfg.Observability.OtelEnabled {
		serviceName = cfg.Observability.ServiceName
		if serviceName == "" {
			serviceName = "dopebook"
		}
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		AuthMiddleware: middleware.Auth,
		SessionHandler: handlers.Session,
		HealthHandler:  handlers.Health,
	})
}
