package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type names an event kind
type Type string

// Event is the envelope published on the bus. Payload holds one of the
// ...PayloadV1 structs in process; after a JSON round trip it is a map.
type Event struct {
	ID         string    `json:"id"`
	Version    string    `json:"version"`
	Type       Type      `json:"type"`
	Source     string    `json:"source,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func newEvent(t Type, source string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Version:    EventSchemaVersion,
		Type:       t,
		Source:     source,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Handler handles one event
type Handler func(ctx context.Context, event Event) error

// Bus routes events to the handlers subscribed to their type
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services.
// Delivery failures are retried and dead-lettered, never returned to the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus delivers events synchronously in process
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewMemoryBus creates an empty bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish runs every handler for the event type, in subscription order.
// A failing handler does not stop the ones after it; all failures are joined.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf(ErrMsgHandlersFailedFmt, len(errs), event.Type, errors.Join(errs...))
}

// Subscribe adds a handler for eventType
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// copy-on-write so Publish can iterate without holding the lock
	next := make([]Handler, 0, len(b.handlers[eventType])+1)
	next = append(next, b.handlers[eventType]...)
	b.handlers[eventType] = append(next, handler)
}
