package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans events out to subscribers within the process.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe registers handler for the listed types, or for every event
	// when no type is given.
	Subscribe(handler EventHandler, types ...EventType)
}

type inMemoryDispatcher struct {
	mu       sync.RWMutex
	byType   map[EventType][]EventHandler
	catchAll []EventHandler
}

// NewInMemoryDispatcher creates a synchronous dispatcher. Handlers run on the
// publishing goroutine, so they see the request's scope in ctx.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{byType: make(map[EventType][]EventHandler)}
}

// Publish runs the type's handlers in subscription order, then the catch-all
// ones. A failing handler does not stop the rest; all errors are joined.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	if event.Type == "" {
		return errors.New("event type required")
	}

	d.mu.RLock()
	handlers := make([]EventHandler, 0, len(d.byType[event.Type])+len(d.catchAll))
	handlers = append(handlers, d.byType[event.Type]...)
	handlers = append(handlers, d.catchAll...)
	d.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", event.Type, err))
		}
	}
	return errors.Join(errs...)
}

func (d *inMemoryDispatcher) Subscribe(handler EventHandler, types ...EventType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(types) == 0 {
		d.catchAll = append(d.catchAll, handler)
		return
	}
	for _, t := range types {
		d.byType[t] = append(d.byType[t], handler)
	}
}
