package services

import (
	"context"
	"time"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

// EventPublisher is satisfied by the redis contact event bus.
type EventPublisher interface {
	Publish(ctx context.Context, evt types.ContactEvent) error
}

// EventCounter records published events; *observability.Metrics satisfies it.
type EventCounter interface {
	IncContactEvent(kind string)
}

type ContactNotifier interface {
	ContactCreated(ctx context.Context, c *types.Contact)
	ContactUpdated(ctx context.Context, c *types.Contact)
	ContactDeleted(ctx context.Context, c *types.Contact)
}

type contactNotifier struct {
	log     *logger.Logger
	pub     EventPublisher
	counter EventCounter
	now     func() time.Time
}

// NewContactNotifier returns a notifier that forwards to pub. A nil pub yields
// a notifier that only counts events.
func NewContactNotifier(log *logger.Logger, pub EventPublisher, counter EventCounter) ContactNotifier {
	return &contactNotifier{
		log:     log.With("service", "ContactNotifier"),
		pub:     pub,
		counter: counter,
		now:     time.Now,
	}
}

func (n *contactNotifier) ContactCreated(ctx context.Context, c *types.Contact) {
	n.emit(ctx, types.EventContactCreated, c)
}

func (n *contactNotifier) ContactUpdated(ctx context.Context, c *types.Contact) {
	n.emit(ctx, types.EventContactUpdated, c)
}

func (n *contactNotifier) ContactDeleted(ctx context.Context, c *types.Contact) {
	n.emit(ctx, types.EventContactDeleted, c)
}

// Publish failures never reach the caller; the mutation already happened.
func (n *contactNotifier) emit(ctx context.Context, kind string, c *types.Contact) {
	if n == nil || c == nil {
		return
	}
	if n.counter != nil {
		n.counter.IncContactEvent(kind)
	}
	if n.pub == nil {
		return
	}
	evt := types.ContactEvent{
		Type:      kind,
		ContactID: c.ID,
		OwnerID:   c.PostedBy,
		At:        n.now().UTC(),
	}
	if err := n.pub.Publish(ctx, evt); err != nil {
		n.log.Warn("publish contact event failed", "event", kind, "contact_id", c.ID, "error", err)
	}
}
