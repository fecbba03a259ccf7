package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/idgen"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/validation"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

// MsgInvalidCredentials is the single answer to any failed login, whether the
// email is unknown or the password is wrong.
const MsgInvalidCredentials = "Invalid credentials. Please try again."

// SignupInput is the signup form payload.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the login form payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutcome reports a completed flow and where the browser goes next.
type AuthOutcome struct {
	User     *domain.User
	Session  *domain.Session
	Redirect string
}

// AuthService coordinates signup, login and logout.
type AuthService struct {
	store      *repository.Storage
	sessions   *SessionService
	hasher     *auth.PasswordHasher
	ids        idgen.Generator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Store      *repository.Storage
	Sessions   *SessionService
	Hasher     *auth.PasswordHasher
	IDs        idgen.Generator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		store:      deps.Store,
		sessions:   deps.Sessions,
		hasher:     deps.Hasher,
		ids:        deps.IDs,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Signup creates an account and logs it in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthOutcome, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if errs := validation.ValidateSignup(name, email, in.Password); !errs.Empty() {
		return nil, apperrors.NewValidationError("invalid signup", errs.Details())
	}

	conflict := apperrors.NewConflict("email already registered", map[string]any{"email": validation.MsgEmailInUse})
	existing, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict
	}

	// Hash outside the lock; the uniqueness check is repeated under it.
	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := domain.User{ID: s.ids.NewID(), Name: name, Email: email, Password: stored}
	err = s.store.Update(ctx, repository.CollectionUsers, func() error {
		existing, err := s.store.FindUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict
		}
		return s.store.AppendUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventUserRegistered,
		Payload: events.UserRegisteredPayload{UserID: user.ID, Email: user.Email},
	})

	session, err := s.sessions.CreateSession(ctx, user, events.ReasonSignup)
	if err != nil {
		return nil, err
	}
	return &AuthOutcome{User: &user, Session: session, Redirect: auth.PathDashboard}, nil
}

// Login checks credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthOutcome, error) {
	email := strings.TrimSpace(in.Email)
	if errs := validation.ValidateLogin(email, in.Password); !errs.Empty() {
		return nil, apperrors.NewValidationError("invalid login", errs.Details())
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || s.hasher.Compare(user.Password, in.Password) != nil {
		return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	session, err := s.sessions.CreateSession(ctx, *user, events.ReasonLogin)
	if err != nil {
		return nil, err
	}
	return &AuthOutcome{User: user, Session: session, Redirect: auth.PathDashboard}, nil
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context) (*AuthOutcome, error) {
	if err := s.sessions.ClearSession(ctx); err != nil {
		return nil, err
	}
	return &AuthOutcome{Redirect: auth.PathLogin}, nil
}
