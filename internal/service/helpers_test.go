package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
)

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "id" + strconv.Itoa(s.n)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type fixture struct {
	ctx      context.Context
	store    *repository.Storage
	clock    *fakeClock
	sessions *SessionService
	auth     *AuthService
	tickets  *TicketService
	stats    *StatsService
	notices  *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := repository.NewStorage(repository.NewMemoryStore(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	ids := &sequentialIDs{}
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	notices := NewNotificationService(dispatcher, store, logger)
	notices.RegisterHandlers()

	sessions := NewSessionService(store, ids, dispatcher, logger)
	sessions.now = clock.Now

	return &fixture{
		ctx:      repository.WithScope(context.Background(), "test-scope"),
		store:    store,
		clock:    clock,
		sessions: sessions,
		auth: NewAuthService(AuthDependencies{
			Store:      store,
			Sessions:   sessions,
			Hasher:     auth.NewPasswordHasher(true, 4),
			IDs:        ids,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		tickets: NewTicketService(TicketDependencies{
			Store:      store,
			IDs:        ids,
			Dispatcher: dispatcher,
			Logger:     logger,
			Now:        clock.Now,
		}),
		stats:   NewStatsService(store),
		notices: notices,
	}
}
