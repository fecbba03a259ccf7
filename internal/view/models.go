package view

import (
	"github.com/spec-kit/ticketapp/internal/domain"
)

// TicketCard is the list summary of one ticket.
type TicketCard struct {
	ID          string
	Title       string
	Description string
	Status      string
	BadgeClass  string
}

// NoticeView is one toast.
type NoticeView struct {
	Level   string
	Message string
}

// StatusOption is one entry of the status select.
type StatusOption struct {
	Value    string
	Selected bool
}

// TicketForm is the create/edit form state.
type TicketForm struct {
	Visible     bool
	Heading     string
	ID          string
	Title       string
	Status      string
	Description string
	Options     []StatusOption
}

// Form headings.
const (
	HeadingCreate = "Create Ticket"
	HeadingEdit   = "Edit Ticket"
)

func badgeClass(status domain.TicketStatus) string {
	switch status {
	case domain.TicketStatusOpen:
		return "status-open"
	case domain.TicketStatusInProgress:
		return "status-in-progress"
	default:
		return "status-closed"
	}
}

// Card builds the list summary for t.
func Card(t domain.Ticket) TicketCard {
	return TicketCard{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		BadgeClass:  badgeClass(t.Status),
	}
}

// Cards keeps the order of tickets.
func Cards(tickets []domain.Ticket) []TicketCard {
	cards := make([]TicketCard, 0, len(tickets))
	for _, t := range tickets {
		cards = append(cards, Card(t))
	}
	return cards
}

// Notices converts queued toasts.
func Notices(notices []domain.Notice) []NoticeView {
	out := make([]NoticeView, 0, len(notices))
	for _, n := range notices {
		out = append(out, NoticeView{Level: string(n.Level), Message: n.Message})
	}
	return out
}

// NewTicketForm returns a visible form with the status options marked.
func NewTicketForm(heading, id, title, status, description string) TicketForm {
	form := TicketForm{
		Visible:     true,
		Heading:     heading,
		ID:          id,
		Title:       title,
		Status:      status,
		Description: description,
	}
	for _, s := range domain.TicketStatuses {
		form.Options = append(form.Options, StatusOption{Value: string(s), Selected: string(s) == status})
	}
	return form
}

// EditForm fills the form from an existing ticket.
func EditForm(t domain.Ticket) TicketForm {
	return NewTicketForm(HeadingEdit, t.ID, t.Title, string(t.Status), t.Description)
}
