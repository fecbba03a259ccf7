package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Collection names one persisted group of records.
type Collection string

const (
	CollectionUsers   Collection = "ticketapp_users"
	CollectionTickets Collection = "ticketapp_tickets"
	CollectionSession Collection = "ticketapp_session"
	CollectionNotices Collection = "ticketapp_notices"
)

type scopeKey struct{}

// WithScope binds a client scope to ctx. Storage keys are namespaced by it.
func WithScope(ctx context.Context, scopeID string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scopeID)
}

// ScopeFromContext returns the client scope bound to ctx, if any.
func ScopeFromContext(ctx context.Context) string {
	scope, _ := ctx.Value(scopeKey{}).(string)
	return scope
}

// Storage reads and writes whole collections as JSON text.
//
// Every save overwrites the collection with a single Set; callers
// read-modify-write the full collection for each mutation, inside Update so
// that concurrent requests of one scope cannot interleave. Text that fails to
// decode is treated as no data and is never reported to the caller.
type Storage struct {
	kv     KeyValueStore
	logger *zap.Logger
	locks  sync.Map // physical key -> *sync.Mutex
}

// NewStorage builds the adapter over a key-value backend.
func NewStorage(kv KeyValueStore, logger *zap.Logger) *Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{kv: kv, logger: logger}
}

// Ping checks the backend.
func (s *Storage) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// Update runs fn holding the lock of collection c in the scope bound to ctx.
// Locks are per process; collections of other scopes, and other collections of
// the same scope, are not blocked. fn must not call Update for the same
// collection.
func (s *Storage) Update(ctx context.Context, c Collection, fn func() error) error {
	value, _ := s.locks.LoadOrStore(s.key(ctx, c), &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (s *Storage) key(ctx context.Context, c Collection) string {
	if scope := ScopeFromContext(ctx); scope != "" {
		return scope + ":" + string(c)
	}
	return string(c)
}

func loadList[T any](ctx context.Context, s *Storage, c Collection) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, s.key(ctx, c))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	records := []T{}
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil || records == nil {
		s.logger.Debug("discarding unreadable collection", zap.String("collection", string(c)), zap.Error(err))
		return []T{}, nil
	}
	return records, nil
}

func saveList[T any](ctx context.Context, s *Storage, c Collection, records []T) error {
	if records == nil {
		records = []T{}
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := s.kv.Set(ctx, s.key(ctx, c), string(encoded)); err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}
	return nil
}
