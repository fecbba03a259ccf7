package events

import (
	"time"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketUpdated  EventType = "ticket_updated"
	EventTicketDeleted  EventType = "ticket_deleted"
	EventUserRegistered EventType = "user_registered"
	EventSessionCreated EventType = "session_created"
	EventSessionCleared EventType = "session_cleared"
)

// Event represents a state change emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Scope     string      `json:"scope"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketPayload carries the ticket affected by a ticket event.
type TicketPayload struct {
	TicketID string              `json:"ticket_id"`
	Title    string              `json:"title"`
	Status   domain.TicketStatus `json:"status"`
}

// SessionReason says which flow opened or closed a session.
type SessionReason string

const (
	ReasonSignup SessionReason = "signup"
	ReasonLogin  SessionReason = "login"
	ReasonLogout SessionReason = "logout"
)

// SessionPayload payload.
type SessionPayload struct {
	UserID string        `json:"user_id,omitempty"`
	Email  string        `json:"email,omitempty"`
	Reason SessionReason `json:"reason"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
