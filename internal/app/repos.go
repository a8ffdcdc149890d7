package app

import (
	"context"
	"fmt"

	"github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/data/repos"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type Repos struct {
	Contact repos.ContactRepo
	User    repos.UserRepo
}

// OpenStore connects the configured backend. The caller owns the returned
// store and must Close it.
func OpenStore(ctx context.Context, log *logger.Logger, cfg StoreConfig) (db.Store, error) {
	switch cfg.Driver {
	case StoreMongo:
		ms, err := db.NewMongoService(ctx, log, db.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	case StorePostgres:
		pg, err := db.NewPostgresService(log, db.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Name:     cfg.Postgres.Name,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		return pg, nil
	case StoreSQLite:
		lite, err := db.NewSQLiteService(log, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func wireRepos(store db.Store, log *logger.Logger) (Repos, error) {
	log.Info("Wiring repos...")
	switch s := store.(type) {
	case *db.MongoService:
		return Repos{
			Contact: repos.NewMongoContactRepo(s.DB(), log),
			User:    repos.NewMongoUserRepo(s.DB(), log),
		}, nil
	case *db.SQLService:
		return Repos{
			Contact: repos.NewGormContactRepo(s.DB(), log),
			User:    repos.NewGormUserRepo(s.DB(), log),
		}, nil
	default:
		return Repos{}, fmt.Errorf("unsupported store %T", store)
	}
}
