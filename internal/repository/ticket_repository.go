package repository

import (
	"context"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// LoadTickets returns the tickets collection in stored order.
func (s *Storage) LoadTickets(ctx context.Context) ([]domain.Ticket, error) {
	return loadList[domain.Ticket](ctx, s, CollectionTickets)
}

// SaveTickets overwrites the tickets collection.
func (s *Storage) SaveTickets(ctx context.Context, tickets []domain.Ticket) error {
	return saveList(ctx, s, CollectionTickets, tickets)
}
