// Package validation checks ticket and account form input.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/ticketapp/internal/domain"
)

const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 1000
	MinPasswordLength    = 6
)

// Messages shown next to the offending field.
const (
	MsgTitleRequired       = "Title is required."
	MsgTitleTooLong        = "Title must be <= 120 characters."
	MsgStatusInvalid       = "Status is required and must be open, in_progress, or closed."
	MsgDescriptionTooLong  = "Description must be <= 1000 characters."
	MsgNameRequired        = "Name is required."
	MsgEmailRequired       = "Email is required."
	MsgPasswordTooShort    = "Password must be at least 6 characters."
	MsgEmailInUse          = "Email already in use."
	MsgLoginEmailRequired  = "Email required."
	MsgLoginPasswordNeeded = "Password required."
)

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Details converts errors into DomainError details.
func (f FieldErrors) Details() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// TicketInput is the ticket form payload.
type TicketInput struct {
	Title       string
	Status      string
	Description string
}

// ValidateTicket applies every ticket rule and returns all failures together.
func ValidateTicket(in TicketInput) FieldErrors {
	errs := FieldErrors{}
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		errs["title"] = MsgTitleRequired
	case utf8.RuneCountInString(title) > MaxTitleLength:
		errs["title"] = MsgTitleTooLong
	}
	if !domain.TicketStatus(in.Status).Valid() {
		errs["status"] = MsgStatusInvalid
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		errs["description"] = MsgDescriptionTooLong
	}
	return errs
}

// ValidateSignup checks the signup form. name and email are expected trimmed.
func ValidateSignup(name, email, password string) FieldErrors {
	errs := FieldErrors{}
	if name == "" {
		errs["name"] = MsgNameRequired
	}
	if email == "" {
		errs["email"] = MsgEmailRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs["password"] = MsgPasswordTooShort
	}
	return errs
}

// ValidateLogin checks that both credentials were supplied.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	if email == "" {
		errs["email"] = MsgLoginEmailRequired
	}
	if password == "" {
		errs["password"] = MsgLoginPasswordNeeded
	}
	return errs
}
