package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// SQLite returns a migrated in-memory database private to the calling test.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	svc, err := db.NewSQLiteService(Logger(tb), dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	ctx := context.Background()
	if err := svc.Migrate(ctx); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	tb.Cleanup(func() {
		_ = svc.Close(ctx)
	})
	return svc.DB()
}

// Mongo returns a throwaway database on the server named by TEST_MONGO_URI,
// dropped when the test ends. Tests are skipped when the variable is unset.
func Mongo(tb testing.TB) *mongo.Database {
	tb.Helper()
	uri := strings.TrimSpace(os.Getenv("TEST_MONGO_URI"))
	if uri == "" {
		tb.Skip("set TEST_MONGO_URI to run mongo repo integration tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	name := "contactbook_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	svc, err := db.NewMongoService(ctx, Logger(tb), db.MongoConfig{URI: uri, Database: name})
	if err != nil {
		tb.Fatalf("connect mongo: %v", err)
	}
	if err := svc.Migrate(ctx); err != nil {
		tb.Fatalf("migrate mongo: %v", err)
	}
	tb.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = svc.DB().Drop(cleanupCtx)
		_ = svc.Close(cleanupCtx)
	})
	return svc.DB()
}
