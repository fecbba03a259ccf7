package events

import (
	"context"

	"go.uber.org/zap"
)

// AuditLog returns a handler that writes one structured line per event.
// Payloads are not logged; they may carry user emails.
func AuditLog(logger *zap.Logger) EventHandler {
	return func(_ context.Context, event Event) error {
		logger.Info("event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("scope", event.Scope),
			zap.Time("at", event.Timestamp),
		)
		return nil
	}
}
