package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

func sqliteConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Store.Driver = StoreSQLite
	cfg.Store.SQLite.Path = filepath.Join(t.TempDir(), "contacts.db")
	cfg.Server.Port = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	return cfg
}

func TestNewWiresSQLiteApp(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, logger.Nop(), sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(ctx) })

	require.NotNil(t, a.Repos.Contact)
	require.NotNil(t, a.Services.Contact)
	require.NotNil(t, a.Metrics)
	assert.Nil(t, a.Bus)

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mycontacts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), logger.Nop(), sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Driver = "cassandra"
	_, err := New(context.Background(), logger.Nop(), cfg)
	require.Error(t, err)
}
