package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/dopebook-backend/internal/http/handlers"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type Handlers struct {
	Session *httpH.SessionHandler
	Health  *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Session: httpH.NewSessionHandler(log, services.Sessions),
		Health:  httpH.NewHealthHandler(db),
	}
}
