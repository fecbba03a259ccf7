package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticketapp/internal/domain"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("backend down") }
func (failingStore) Delete(context.Context, string) error { return errors.New("backend down") }
func (failingStore) Ping(context.Context) error { return errors.New("backend down") }

func TestTicketsRoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(NewMemoryStore(), nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	updated := now.Add(time.Minute)
	tickets := []domain.Ticket{
		{ID: "b", Title: "second", Status: domain.TicketStatusClosed, CreatedAt: now.Add(time.Hour), UpdatedAt: &updated},
		{ID: "a", Title: "first", Status: domain.TicketStatusOpen, Description: "desc", CreatedAt: now},
	}

	require.NoError(t, s.SaveTickets(ctx, tickets))
	loaded, err := s.LoadTickets(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "b", loaded[0].ID)
	assert.Equal(t, "a", loaded[1].ID)
	assert.True(t, loaded[0].CreatedAt.Equal(tickets[0].CreatedAt))
	require.NotNil(t, loaded[0].UpdatedAt)
	assert.True(t, loaded[0].UpdatedAt.Equal(updated))
	assert.Nil(t, loaded[1].UpdatedAt)
}

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	s := NewStorage(NewMemoryStore(), nil)
	users, err := s.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestCorruptCollectionsLoadAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	s := NewStorage(kv, nil)

	for _, raw := range []string{"{not json", "null", `{"id":"x"}`} {
		require.NoError(t, kv.Set(ctx, string(CollectionTickets), raw))
		tickets, err := s.LoadTickets(ctx)
		require.NoError(t, err, raw)
		assert.Empty(t, tickets, raw)
	}

	require.NoError(t, kv.Set(ctx, string(CollectionSession), "garbage"))
	session, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestScopesAreIsolated(t *testing.T) {
	kv := NewMemoryStore()
	s := NewStorage(kv, nil)
	ctxA := WithScope(context.Background(), "client-a")
	ctxB := WithScope(context.Background(), "client-b")

	require.NoError(t, s.AppendUser(ctxA, domain.User{ID: "1", Email: "a@example.com"}))

	usersB, err := s.LoadUsers(ctxB)
	require.NoError(t, err)
	assert.Empty(t, usersB)

	raw, ok, err := kv.Get(context.Background(), "client-a:ticketapp_users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, raw, "a@example.com")
}

func TestFindUserByEmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(NewMemoryStore(), nil)
	require.NoError(t, s.AppendUser(ctx, domain.User{ID: "1", Email: "Ann@example.com"}))

	found, err := s.FindUserByEmail(ctx, "Ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "1", found.ID)

	missing, err := s.FindUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionSlot(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(NewMemoryStore(), nil)

	session, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, s.SaveSession(ctx, domain.Session{Token: "t1", UserID: "u1", Email: "a@b.c", CreatedAt: time.Now()}))
	require.NoError(t, s.SaveSession(ctx, domain.Session{Token: "t2", UserID: "u2", Email: "d@e.f", CreatedAt: time.Now()}))

	session, err = s.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "t2", session.Token)

	require.NoError(t, s.ClearSession(ctx))
	session, err = s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestNoticesDrainOnce(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(NewMemoryStore(), nil)
	require.NoError(t, s.PushNotice(ctx, domain.Notice{Level: domain.NoticeSuccess, Message: "one"}))
	require.NoError(t, s.PushNotice(ctx, domain.Notice{Level: domain.NoticeError, Message: "two"}))

	notices, err := s.DrainNotices(ctx)
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, "one", notices[0].Message)

	notices, err = s.DrainNotices(ctx)
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestAckNoticesKeepsLaterToasts(t *testing.T) {
	ctx := WithScope(context.Background(), "scope-a")
	s := NewStorage(NewMemoryStore(), nil)
	require.NoError(t, s.PushNotice(ctx, domain.Notice{Level: domain.NoticeSuccess, Message: "one"}))

	pending, err := s.PendingNotices(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, s.PushNotice(ctx, domain.Notice{Level: domain.NoticeError, Message: "two"}))

	require.NoError(t, s.AckNotices(ctx, len(pending)))
	rest, err := s.PendingNotices(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "two", rest[0].Message)

	require.NoError(t, s.AckNotices(ctx, 1))
	rest, err = s.PendingNotices(ctx)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestConcurrentWritesInOneScopeAreNotLost(t *testing.T) {
	ctx := WithScope(context.Background(), "scope-a")
	s := NewStorage(NewMemoryStore(), nil)
	const writers = 200

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.PushNotice(ctx, domain.Notice{Level: domain.NoticeInfo, Message: strconv.Itoa(i)}))
			assert.NoError(t, s.Update(ctx, CollectionTickets, func() error {
				tickets, err := s.LoadTickets(ctx)
				if err != nil {
					return err
				}
				return s.SaveTickets(ctx, append(tickets, domain.Ticket{ID: strconv.Itoa(i)}))
			}))
		}(i)
	}
	wg.Wait()

	tickets, err := s.LoadTickets(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, writers)
	notices, err := s.DrainNotices(ctx)
	require.NoError(t, err)
	assert.Len(t, notices, writers)
}

func TestBackendErrorsAreReturned(t *testing.T) {
	s := NewStorage(failingStore{}, nil)
	_, err := s.LoadTickets(context.Background())
	assert.Error(t, err)
	assert.Error(t, s.SaveTickets(context.Background(), nil))
	_, err = s.LoadSession(context.Background())
	assert.Error(t, err)
}
