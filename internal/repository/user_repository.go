package repository

import (
	"context"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// LoadUsers returns every user in the scope.
func (s *Storage) LoadUsers(ctx context.Context) ([]domain.User, error) {
	return loadList[domain.User](ctx, s, CollectionUsers)
}

// SaveUsers overwrites the users collection.
func (s *Storage) SaveUsers(ctx context.Context, users []domain.User) error {
	return saveList(ctx, s, CollectionUsers, users)
}

// FindUserByEmail looks a user up by exact, case-sensitive email.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// AppendUser adds user to the end of the collection.
func (s *Storage) AppendUser(ctx context.Context, user domain.User) error {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return err
	}
	return s.SaveUsers(ctx, append(users, user))
}
