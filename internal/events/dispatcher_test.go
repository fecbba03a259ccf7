package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.ID)
		return errors.New("first failed")
	}, EventTicketCreated)
	d.Subscribe(func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.ID)
		return nil
	}, EventTicketCreated, EventTicketUpdated)
	d.Subscribe(func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	}, EventTicketDeleted)
	d.Subscribe(func(_ context.Context, e Event) error {
		calls = append(calls, "all:"+string(e.Type))
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventTicketCreated})
	assert.EqualError(t, err, "ticket_created: first failed")
	assert.Equal(t, []string{"first:e1", "second:e1", "all:ticket_created"}, calls)

	calls = nil
	require.NoError(t, d.Publish(context.Background(), Event{ID: "e2", Type: EventTicketUpdated}))
	assert.Equal(t, []string{"second:e2", "all:ticket_updated"}, calls)
}

func TestPublishWithoutListeners(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventSessionCleared}))
}

func TestPublishRequiresType(t *testing.T) {
	assert.Error(t, NewInMemoryDispatcher().Publish(context.Background(), Event{ID: "x"}))
}

func TestAuditLogOmitsPayload(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewInMemoryDispatcher()
	d.Subscribe(AuditLog(zap.New(core)))

	err := d.Publish(context.Background(), Event{
		ID:      "e1",
		Type:    EventUserRegistered,
		Scope:   "scope-1",
		Payload: UserRegisteredPayload{UserID: "u1", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user_registered", fields["event_type"])
	assert.Equal(t, "scope-1", fields["scope"])
	assert.NotContains(t, fields, "email")
}
