package service

import (
	"context"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/repository"
)

// Stats summarizes the tickets collection for the dashboard.
type Stats struct {
	Total  int
	Open   int
	Closed int
}

// ComputeStats counts tickets. In-progress tickets count toward Total only.
func ComputeStats(tickets []domain.Ticket) Stats {
	stats := Stats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}
	return stats
}

// StatsService recomputes stats from storage on every call.
type StatsService struct {
	store *repository.Storage
}

// NewStatsService builds the service.
func NewStatsService(store *repository.Storage) *StatsService {
	return &StatsService{store: store}
}

// Current returns stats for the scope in ctx.
func (s *StatsService) Current(ctx context.Context) (Stats, error) {
	tickets, err := s.store.LoadTickets(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(tickets), nil
}
