package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// PushNotice queues a toast for the next rendered page of the scope.
func (s *Storage) PushNotice(ctx context.Context, notice domain.Notice) error {
	return s.Update(ctx, CollectionNotices, func() error {
		notices, err := loadList[domain.Notice](ctx, s, CollectionNotices)
		if err != nil {
			return err
		}
		return saveList(ctx, s, CollectionNotices, append(notices, notice))
	})
}

// PendingNotices returns the queued toasts without removing them.
func (s *Storage) PendingNotices(ctx context.Context) ([]domain.Notice, error) {
	return loadList[domain.Notice](ctx, s, CollectionNotices)
}

// AckNotices removes the n oldest toasts, once they have been shown. Toasts
// queued after PendingNotices was read stay queued.
func (s *Storage) AckNotices(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return s.Update(ctx, CollectionNotices, func() error {
		notices, err := loadList[domain.Notice](ctx, s, CollectionNotices)
		if err != nil {
			return err
		}
		if n < len(notices) {
			return saveList(ctx, s, CollectionNotices, notices[n:])
		}
		if err := s.kv.Delete(ctx, s.key(ctx, CollectionNotices)); err != nil {
			return fmt.Errorf("clear %s: %w", CollectionNotices, err)
		}
		return nil
	})
}

// DrainNotices returns and removes every queued toast.
func (s *Storage) DrainNotices(ctx context.Context) ([]domain.Notice, error) {
	var drained []domain.Notice
	err := s.Update(ctx, CollectionNotices, func() error {
		notices, err := loadList[domain.Notice](ctx, s, CollectionNotices)
		if err != nil {
			return err
		}
		drained = notices
		if len(notices) == 0 {
			return nil
		}
		if err := s.kv.Delete(ctx, s.key(ctx, CollectionNotices)); err != nil {
			return fmt.Errorf("clear %s: %w", CollectionNotices, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drained, nil
}
