package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/idgen"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/validation"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

// TicketService coordinates ticket workflows. Tickets are shared by every
// user of a client scope.
type TicketService struct {
	store      *repository.Storage
	ids        idgen.Generator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	Store      *repository.Storage
	IDs        idgen.Generator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// TicketSaveInput is the ticket form. An empty ID creates a ticket.
type TicketSaveInput struct {
	ID          string
	Title       string
	Status      string
	Description string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		store:      deps.Store,
		ids:        deps.IDs,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// List returns every ticket, newest createdAt first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.store.LoadTickets(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets, nil
}

// Get looks a ticket up by id.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	tickets, err := s.store.LoadTickets(ctx)
	if err != nil {
		return nil, err
	}
	if idx := indexOf(tickets, id); idx >= 0 {
		return &tickets[idx], nil
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// Save validates the form, then updates the ticket named by in.ID or creates
// a new one. Nothing is persisted when validation fails.
func (s *TicketService) Save(ctx context.Context, in TicketSaveInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	status := strings.TrimSpace(in.Status)

	errs := validation.ValidateTicket(validation.TicketInput{Title: title, Status: status, Description: description})
	if !errs.Empty() {
		return nil, apperrors.NewValidationError("invalid ticket", errs.Details())
	}

	var (
		saved     domain.Ticket
		eventType events.EventType
	)
	err := s.store.Update(ctx, repository.CollectionTickets, func() error {
		tickets, err := s.store.LoadTickets(ctx)
		if err != nil {
			return err
		}

		now := s.now()
		if in.ID != "" {
			idx := indexOf(tickets, in.ID)
			if idx < 0 {
				return apperrors.NewNotFound("ticket", map[string]any{"id": in.ID})
			}
			ticket := &tickets[idx]
			if ticket.UpdatedAt != nil && now.Before(*ticket.UpdatedAt) {
				now = *ticket.UpdatedAt
			}
			ticket.Title = title
			ticket.Status = domain.TicketStatus(status)
			ticket.Description = description
			ticket.UpdatedAt = &now
			saved = *ticket
			eventType = events.EventTicketUpdated
		} else {
			saved = domain.Ticket{
				ID:          s.ids.NewID(),
				Title:       title,
				Status:      domain.TicketStatus(status),
				Description: description,
				CreatedAt:   now,
			}
			tickets = append(tickets, saved)
			eventType = events.EventTicketCreated
		}
		return s.store.SaveTickets(ctx, tickets)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventType, saved)
	return &saved, nil
}

// Delete removes the ticket with id.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	var removed domain.Ticket
	err := s.store.Update(ctx, repository.CollectionTickets, func() error {
		tickets, err := s.store.LoadTickets(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(tickets, id)
		if idx < 0 {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		removed = tickets[idx]
		return s.store.SaveTickets(ctx, append(tickets[:idx], tickets[idx+1:]...))
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventTicketDeleted, removed)
	return nil
}
func (s *TicketService) publish(ctx context.Context, eventType events.EventType, ticket domain.Ticket) {
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type: eventType,
		Payload: events.TicketPayload{
			TicketID: ticket.ID,
			Title:    ticket.Title,
			Status:   ticket.Status,
		},
	})
}

func indexOf(tickets []domain.Ticket, id string) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}
