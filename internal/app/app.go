package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/contactbook-backend/internal/clients/redis"
	"github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/http"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    db.Store
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Bus      redis.ContactBus
	Server   *http.Server

	otelShutdown func(context.Context) error
}

// New connects the store and wires every layer. On error everything opened
// so far is closed again.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	a := &App{Log: log, Cfg: cfg}

	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Log.Mode,
		Version:     Version,
		Endpoint:    cfg.Otel.Endpoint,
		Insecure:    cfg.Otel.Insecure,
		Headers:     observability.ParseHeaders(cfg.Otel.Headers),
		SampleRatio: cfg.Otel.SampleRatio,
	})

	store, err := OpenStore(ctx, log, cfg.Store)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("init store: %w", err)
	}
	a.Store = store
	if err := store.Migrate(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("store migrate: %w", err)
	}

	reposet, err := wireRepos(store, log)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Repos = reposet

	if cfg.Metrics.Enabled {
		a.Metrics = observability.NewMetrics()
	}
	a.Bus = wireBus(ctx, log, cfg.Redis)
	a.Services = wireServices(log, cfg, reposet, a.Bus, a.Metrics)

	handlerset := wireHandlers(log, a.Services, store)
	middleware := wireMiddleware(log, a.Services)
	a.Server = wireServer(log, cfg, handlerset, middleware, a.Metrics)
	return a, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	a.Metrics.StartStoreCollector(gctx, a.Log, a.Store, a.Cfg.Metrics.ScrapeInterval)

	addr := listenAddr(a.Cfg.Server.Port)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", addr, "store", a.Cfg.Store.Driver)
		return a.Server.Run(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := a.Cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.Log.Info("Shutting down HTTP server")
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Bus != nil {
		if err := a.Bus.Close(); err != nil {
			a.Log.Warn("redis close failed", "error", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			a.Log.Warn("store close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
