package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/api/http/handlers"
	"github.com/spec-kit/ticketapp/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Pages       *handlers.PagesHandler
	Auth        *handlers.AuthHandler
	Tickets     *handlers.TicketsHandler
	ClientScope *auth.ClientScopeMiddleware
	Notifier    auth.Notifier
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	site := app.Group("", cfg.ClientScope.Handle, auth.Guard(cfg.Notifier))
	site.Get(auth.PathHome, cfg.Pages.Landing)
	site.Get(auth.PathDashboard, cfg.Pages.Dashboard)

	site.Get(auth.PathLogin, cfg.Auth.LoginPage)
	site.Post(auth.PathLogin, cfg.Auth.Login)
	site.Get(auth.PathSignup, cfg.Auth.SignupPage)
	site.Post(auth.PathSignup, cfg.Auth.Signup)
	site.Post("/auth/logout", cfg.Auth.Logout)

	site.Get(auth.PathTickets, cfg.Tickets.ListTickets)
	site.Post(auth.PathTickets, cfg.Tickets.SaveTicket)
	site.Get(auth.PathTickets+"/new", cfg.Tickets.NewTicket)
	site.Get(auth.PathTickets+"/:id/edit", cfg.Tickets.EditTicket)
	site.Get(auth.PathTickets+"/:id/delete", cfg.Tickets.ConfirmDelete)
	site.Post(auth.PathTickets+"/:id/delete", cfg.Tickets.DeleteTicket)

	site.Use(cfg.Pages.NotFound)
}
