package app

import (
	"github.com/yungbote/contactbook-backend/internal/data/db"
	httpH "github.com/yungbote/contactbook-backend/internal/http/handlers"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Contact *httpH.ContactHandler
}

func wireHandlers(log *logger.Logger, services Services, store db.Store) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(log, store),
		Auth:    httpH.NewAuthHandler(services.Auth),
		User:    httpH.NewUserHandler(services.User),
		Contact: httpH.NewContactHandler(services.Contact),
	}
}
