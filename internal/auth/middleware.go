package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/repository"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

const (
	scopeKey   = "client_scope"
	sessionKey = "client_session"
)

// SessionReader loads the session of the scope bound to ctx.
type SessionReader interface {
	GetSession(ctx context.Context) (*domain.Session, error)
}

// CookieConfig controls the client scope cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// ClientScopeMiddleware binds each browser to its own storage scope.
//
// The scope id travels in a signed cookie. A missing, expired or forged cookie
// starts a fresh, empty scope.
type ClientScopeMiddleware struct {
	tokens   *TokenManager
	sessions SessionReader
	cookie   CookieConfig
	logger   *zap.Logger
}

// NewClientScopeMiddleware constructs middleware.
func NewClientScopeMiddleware(tokens *TokenManager, sessions SessionReader, cookie CookieConfig, logger *zap.Logger) *ClientScopeMiddleware {
	if cookie.Name == "" {
		cookie.Name = "ticketapp_client"
	}
	return &ClientScopeMiddleware{tokens: tokens, sessions: sessions, cookie: cookie, logger: logger}
}

// Handle resolves the scope and loads its session once for the request.
func (m *ClientScopeMiddleware) Handle(c *fiber.Ctx) error {
	scopeID := ""
	if raw := c.Cookies(m.cookie.Name); raw != "" {
		claims, err := m.tokens.ParseToken(raw)
		if err == nil {
			scopeID = claims.ScopeID
		} else {
			m.logger.Debug("rejecting client token", zap.Error(err))
		}
	}

	if scopeID == "" {
		scopeID = uuid.NewString()
		token, expiresAt, err := m.tokens.GenerateToken(scopeID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     m.cookie.Name,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			HTTPOnly: true,
			Secure:   m.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	ctx := repository.WithScope(c.UserContext(), scopeID)
	c.SetUserContext(ctx)
	c.Locals(scopeKey, scopeID)

	session, err := m.sessions.GetSession(ctx)
	if err != nil {
		return err
	}
	if session != nil {
		c.Locals(sessionKey, session)
	}
	return c.Next()
}

// ScopeFromContext returns the client scope id of the request.
func ScopeFromContext(c *fiber.Ctx) string {
	scope, _ := c.Locals(scopeKey).(string)
	return scope
}

// SessionFromContext retrieves the session loaded for this request.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	session, ok := c.Locals(sessionKey).(*domain.Session)
	return session, ok && session != nil
}
