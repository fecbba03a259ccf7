package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/idgen"
	"github.com/spec-kit/ticketapp/internal/repository"
)

// SessionService manages the single session slot of a client scope.
// Sessions never expire; only their presence matters.
type SessionService struct {
	store      *repository.Storage
	ids        idgen.Generator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewSessionService builds the service.
func NewSessionService(store *repository.Storage, ids idgen.Generator, dispatcher events.Dispatcher, logger *zap.Logger) *SessionService {
	return &SessionService{store: store, ids: ids, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// CreateSession replaces the current session with a fresh one for user.
func (s *SessionService) CreateSession(ctx context.Context, user domain.User, reason events.SessionReason) (*domain.Session, error) {
	session := domain.Session{
		Token:     s.ids.NewID(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: s.now(),
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventSessionCreated,
		Payload: events.SessionPayload{UserID: user.ID, Email: user.Email, Reason: reason},
	})
	return &session, nil
}

// GetSession returns the current session or nil.
func (s *SessionService) GetSession(ctx context.Context) (*domain.Session, error) {
	return s.store.LoadSession(ctx)
}

// IsAuthenticated reports whether a session exists.
func (s *SessionService) IsAuthenticated(ctx context.Context) (bool, error) {
	session, err := s.GetSession(ctx)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// ClearSession removes the session.
func (s *SessionService) ClearSession(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventSessionCleared,
		Payload: events.SessionPayload{Reason: events.ReasonLogout},
	})
	return nil
}
