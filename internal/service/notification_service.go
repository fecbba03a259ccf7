package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
)

// Toast texts queued in response to state changes.
const (
	MsgTicketCreated = "Ticket created."
	MsgTicketUpdated = "Ticket updated."
	MsgTicketDeleted = "Ticket deleted."
	MsgSignedUp      = "Account created. Redirecting to dashboard..."
	MsgLoggedIn      = "Login successful. Redirecting to dashboard."
	MsgLoggedOut     = "Logged out."
	MsgTicketMissing = "Ticket not found."
)

// NotificationService turns domain events into toasts for the client scope
// that caused them.
type NotificationService struct {
	dispatcher events.Dispatcher
	store      *repository.Storage
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, store *repository.Storage, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(n.toast(domain.NoticeSuccess, MsgTicketCreated), events.EventTicketCreated)
	n.dispatcher.Subscribe(n.toast(domain.NoticeSuccess, MsgTicketUpdated), events.EventTicketUpdated)
	n.dispatcher.Subscribe(n.toast(domain.NoticeSuccess, MsgTicketDeleted), events.EventTicketDeleted)
	n.dispatcher.Subscribe(n.handleSessionCreated, events.EventSessionCreated)
	n.dispatcher.Subscribe(n.toast(domain.NoticeSuccess, MsgLoggedOut), events.EventSessionCleared)
	n.dispatcher.Subscribe(n.handleUserRegistered, events.EventUserRegistered)
}

// Notify queues a toast directly, for failures that change no state.
func (n *NotificationService) Notify(ctx context.Context, level domain.NoticeLevel, message string) error {
	return n.store.PushNotice(ctx, domain.Notice{Level: level, Message: message})
}

// Pending returns the toasts queued for the scope in ctx, leaving them queued.
func (n *NotificationService) Pending(ctx context.Context) ([]domain.Notice, error) {
	return n.store.PendingNotices(ctx)
}

// Ack removes the first count pending toasts once a page showing them is ready.
func (n *NotificationService) Ack(ctx context.Context, count int) error {
	return n.store.AckNotices(ctx, count)
}

// Drain returns and clears the toasts pending for the scope in ctx.
func (n *NotificationService) Drain(ctx context.Context) ([]domain.Notice, error) {
	return n.store.DrainNotices(ctx)
}

func (n *NotificationService) toast(level domain.NoticeLevel, message string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Debug("queue toast", zap.String("event_type", string(event.Type)), zap.String("scope", event.Scope))
		return n.Notify(ctx, level, message)
	}
}

func (n *NotificationService) handleSessionCreated(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.SessionPayload)
	message := MsgLoggedIn
	if payload.Reason == events.ReasonSignup {
		message = MsgSignedUp
	}
	return n.Notify(ctx, domain.NoticeSuccess, message)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.UserRegisteredPayload)
	n.logger.Info("UserRegistered", zap.String("scope", event.Scope), zap.String("user_id", payload.UserID))
	return nil
}
