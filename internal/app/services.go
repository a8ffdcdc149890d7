package app

import (
	"context"

	"github.com/yungbote/contactbook-backend/internal/clients/redis"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
	"github.com/yungbote/contactbook-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Contact  services.ContactService
	Notifier services.ContactNotifier
}

// wireBus connects the redis event bus when an address is configured. Events
// are best-effort, so a connection failure only disables them.
func wireBus(ctx context.Context, log *logger.Logger, cfg RedisConfig) redis.ContactBus {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set; contact events disabled")
		return nil
	}
	bus, err := redis.NewContactBus(ctx, log, redis.Config{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Channel:  cfg.Channel,
	})
	if err != nil {
		log.Warn("Could not init redis contact bus; contact events disabled", "error", err)
		return nil
	}
	return bus
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, bus redis.ContactBus, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	var pub services.EventPublisher
	if bus != nil {
		pub = bus
	}
	var counter services.EventCounter
	if metrics != nil {
		counter = metrics
	}
	notifier := services.NewContactNotifier(log, pub, counter)

	return Services{
		Auth:     services.NewAuthService(log, reposet.User, cfg.Auth.JWTSecretKey, cfg.Auth.AccessTokenTTL),
		User:     services.NewUserService(log, reposet.User),
		Contact:  services.NewContactService(log, reposet.Contact, notifier, cfg.Pagination.DefaultLimit),
		Notifier: notifier,
	}
}
