package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// Page paths known to the guard.
const (
	PathHome      = "/"
	PathLogin     = "/auth/login"
	PathSignup    = "/auth/signup"
	PathDashboard = "/dashboard"
	PathTickets   = "/tickets"
)

// MsgSessionExpired is queued when an anonymous visitor hits a protected page.
const MsgSessionExpired = "Your session has expired. Please log in again."

// Notifier queues a toast for the current client scope.
type Notifier interface {
	Notify(ctx context.Context, level domain.NoticeLevel, message string) error
}

// Decision is the guard's verdict for one page load. An empty Redirect means stay.
type Decision struct {
	Redirect string
	Notice   *domain.Notice
}

// NormalizePath strips a trailing slash from every path but the root.
func NormalizePath(path string) string {
	if path == "" {
		return PathHome
	}
	if path != PathHome && strings.HasSuffix(path, "/") {
		return strings.TrimRight(path, "/")
	}
	return path
}

// IsProtected reports whether path needs a session.
func IsProtected(path string) bool {
	path = NormalizePath(path)
	return path == PathDashboard || path == PathTickets || strings.HasPrefix(path, PathTickets+"/")
}

// IsAuthPage reports whether path is the login or signup page.
func IsAuthPage(path string) bool {
	path = NormalizePath(path)
	return path == PathLogin || path == PathSignup
}

// Evaluate applies the routing policy. It is advisory: it only steers page
// navigation and guards no data access.
func Evaluate(path string, authenticated bool) Decision {
	switch {
	case IsProtected(path) && !authenticated:
		return Decision{
			Redirect: PathLogin,
			Notice:   &domain.Notice{Level: domain.NoticeError, Message: MsgSessionExpired},
		}
	case IsAuthPage(path) && authenticated:
		return Decision{Redirect: PathDashboard}
	default:
		return Decision{}
	}
}

// Guard redirects page loads according to Evaluate. It must run after
// ClientScopeMiddleware.
func Guard(notifier Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, authenticated := SessionFromContext(c)
		decision := Evaluate(c.Path(), authenticated)
		if decision.Redirect == "" {
			return c.Next()
		}
		if decision.Notice != nil && notifier != nil {
			if err := notifier.Notify(c.UserContext(), decision.Notice.Level, decision.Notice.Message); err != nil {
				return err
			}
		}
		return c.Redirect(decision.Redirect, http.StatusSeeOther)
	}
}
