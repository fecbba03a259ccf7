package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// LoadSession returns the scope's session, or nil when absent or unreadable.
func (s *Storage) LoadSession(ctx context.Context) (*domain.Session, error) {
	raw, ok, err := s.kv.Get(ctx, s.key(ctx, CollectionSession))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", CollectionSession, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var session *domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Debug("discarding unreadable session", zap.Error(err))
		return nil, nil
	}
	return session, nil
}

// SaveSession replaces the single session slot.
func (s *Storage) SaveSession(ctx context.Context, session domain.Session) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode %s: %w", CollectionSession, err)
	}
	if err := s.kv.Set(ctx, s.key(ctx, CollectionSession), string(encoded)); err != nil {
		return fmt.Errorf("save %s: %w", CollectionSession, err)
	}
	return nil
}

// ClearSession empties the session slot.
func (s *Storage) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key(ctx, CollectionSession)); err != nil {
		return fmt.Errorf("clear %s: %w", CollectionSession, err)
	}
	return nil
}
