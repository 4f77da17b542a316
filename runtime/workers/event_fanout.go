package workers

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DeliveryObserver receives the outcome of every fanout.
type DeliveryObserver interface {
	Delivery(kind string, d contract.Delivery)
}

// EventFanout delivers named events to the rooms of the registry.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. Offline identities simply miss the event:
// nothing is queued for later.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log         *slog.Logger
	registry    contract.IRegistry
	observer    DeliveryObserver
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry,
	observer DeliveryObserver, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, registry: registry, observer: observer, sinkTimeout: sinkTimeout}
}

// Broadcast delivers the event to every live session of one identity.
func (f *EventFanout) Broadcast(ctx context.Context, identity domain.UserID, e event.Event) contract.Delivery {
	d := f.deliver(ctx, f.registry.SinksFor(identity), e)
	f.report(e, d, slog.Int64("user_id", int64(identity)))
	return d
}

// BroadcastToMany delivers the event once per distinct identity.
func (f *EventFanout) BroadcastToMany(ctx context.Context, identities []domain.UserID, e event.Event) contract.Delivery {
	var total contract.Delivery
	for _, identity := range lo.Uniq(identities) {
		d := f.deliver(ctx, f.registry.SinksFor(identity), e)
		total.Delivered += d.Delivered
		total.Failed += d.Failed
	}
	f.report(e, total, slog.Int("identities", len(identities)))
	return total
}

// BroadcastAll delivers the event to every live session.
func (f *EventFanout) BroadcastAll(ctx context.Context, e event.Event) contract.Delivery {
	d := f.deliver(ctx, f.registry.Sessions(), e)
	f.report(e, d, slog.String("scope", "all"))
	return d
}

// deliver gives every sink its own sinkTimeout budget, so one stalled
// session cannot eat the time of the ones after it.
func (f *EventFanout) deliver(ctx context.Context, sinks []contract.EventSink, e event.Event) contract.Delivery {
	var d contract.Delivery
	for _, sink := range sinks {
		if err := f.consume(ctx, sink, e); err != nil {
			f.log.Debug("Session missed an event",
				"event", e.Name(), "session_id", sink.ID(), "error", err)
			d.Failed++
			continue
		}
		d.Delivered++
	}
	return d
}

func (f *EventFanout) consume(ctx context.Context, sink contract.EventSink, e event.Event) error {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()
	return sink.Consume(ctx, e)
}

func (f *EventFanout) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.sinkTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.sinkTimeout)
}

func (f *EventFanout) report(e event.Event, d contract.Delivery, target slog.Attr) {
	if f.observer != nil {
		f.observer.Delivery(Kind(e), d)
	}
	if d.Failed > 0 {
		f.log.Warn("Some sessions missed an event",
			"event", e.Name(), "delivered", d.Delivered, "failed", d.Failed, target)
		return
	}
	f.log.Debug("Event delivered", "event", e.Name(), "delivered", d.Delivered, target)
}

// Kind folds per-chat event names into a bounded label set.
func Kind(e event.Event) string {
	name := e.Name()
	if strings.HasPrefix(name, "receive_message_") {
		return "receive_message"
	}
	return name
}
