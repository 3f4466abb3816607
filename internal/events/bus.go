package events

import (
	"context"
	"log/slog"
	"sync"
)

// subscription is one subscriber channel. An empty eventType receives every
// event.
type subscription struct {
	eventType string
	ch        chan Event
}

// Bus fans published events out to subscriber channels.
// Delivery never blocks the publisher: a full subscriber drops the event.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	log    *EventLog // may be nil
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish persists e (when a log is attached) and delivers it to matching
// subscribers. Persistence failures are logged, not returned.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.AppendContext(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "event", Describe(e), "error", err)
		}
	}

	for _, s := range b.subs {
		if s.eventType != "" && s.eventType != e.EventType() {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"event", Describe(e),
				"subscription", subscriptionName(s.eventType))
		}
	}
	return nil
}

func subscriptionName(eventType string) string {
	if eventType == "" {
		return "*"
	}
	return eventType
}

// Subscribe returns a channel for events of a specific type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(eventType, bufferSize)
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add("", bufferSize)
}

func (b *Bus) add(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, subscription{eventType: eventType, ch: ch})
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
