package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
)

// publishEvent stamps and publishes event. Subscriber failures are logged, not
// returned: the state change they report has already been persisted.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Scope == "" {
		event.Scope = repository.ScopeFromContext(ctx)
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event subscriber failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
