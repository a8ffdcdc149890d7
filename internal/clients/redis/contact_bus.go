package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

const DefaultChannel = "contacts"

type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// ContactBus fans contact change events out over a redis pub/sub channel.
type ContactBus interface {
	Publish(ctx context.Context, evt types.ContactEvent) error
	StartForwarder(ctx context.Context, onEvent func(evt types.ContactEvent)) error
	Close() error
}

type contactBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewContactBus(ctx context.Context, log *logger.Logger, cfg Config) (ContactBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	ch := strings.TrimSpace(cfg.Channel)
	if ch == "" {
		ch = DefaultChannel
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &contactBus{
		log:     log.With("client", "RedisContactBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *contactBus) Publish(ctx context.Context, evt types.ContactEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis contact bus not initialized")
	}
	raw, err := encodeEvent(evt)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// StartForwarder subscribes and calls onEvent for every decoded message until
// ctx is cancelled.
func (b *contactBus) StartForwarder(ctx context.Context, onEvent func(evt types.ContactEvent)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis contact bus not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				evt, err := decodeEvent(m.Payload)
				if err != nil {
					b.log.Warn("bad redis contact event payload", "error", err)
					continue
				}
				onEvent(evt)
			}
		}
	}()

	return nil
}

func (b *contactBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

func encodeEvent(evt types.ContactEvent) ([]byte, error) {
	if evt.Type == "" {
		return nil, fmt.Errorf("contact event type required")
	}
	return json.Marshal(evt)
}

func decodeEvent(payload string) (types.ContactEvent, error) {
	var evt types.ContactEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		return evt, err
	}
	if evt.Type == "" {
		return evt, fmt.Errorf("contact event type missing")
	}
	return evt, nil
}
