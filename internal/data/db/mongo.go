package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

const (
	ContactsCollection = "contacts"
	UsersCollection    = "users"
)

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// MongoService owns the process-wide mongo client. It is created once at
// start-up, shared read-only by repos and closed at shutdown.
type MongoService struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func NewMongoService(ctx context.Context, logg *logger.Logger, cfg MongoConfig) (*MongoService, error) {
	serviceLog := logg.With("service", "MongoService")
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	serviceLog.Info("Connected to Mongo", "database", cfg.Database)
	return &MongoService{client: client, db: client.Database(cfg.Database), log: serviceLog}, nil
}

func (s *MongoService) DB() *mongo.Database { return s.db }

func (s *MongoService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Migrate creates the indexes the repos rely on. It is idempotent.
func (s *MongoService) Migrate(ctx context.Context) error {
	_, err := s.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	_, err = s.db.Collection(ContactsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "postedBy", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("owner_id")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email")},
	})
	if err != nil {
		return fmt.Errorf("create contacts indexes: %w", err)
	}
	return nil
}

func (s *MongoService) Close(ctx context.Context) error {
	s.log.Info("Disconnecting from Mongo")
	return s.client.Disconnect(ctx)
}
