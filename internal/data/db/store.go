package db

import "context"

// Store is the lifecycle surface shared by the mongo and SQL backends.
type Store interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Store = (*SQLService)(nil)
	_ Store = (*MongoService)(nil)
)
