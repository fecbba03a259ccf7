package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/api/http/handlers"
	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/config"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/idgen"
	"github.com/spec-kit/ticketapp/internal/observability"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/service"
	"github.com/spec-kit/ticketapp/internal/view"
)

// NewServer assembles services, handlers and routes on top of the given
// key-value backend.
func NewServer(cfg *config.Config, logger *zap.Logger, kv repository.KeyValueStore) (*fiber.App, error) {
	metrics := observability.NewMetrics()
	store := repository.NewStorage(kv, logger)
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.AuditLog(logger.Named("events")))

	notifications := service.NewNotificationService(dispatcher, store, logger)
	notifications.RegisterHandlers()

	ids := idgen.New(cfg.Auth.IDScheme)
	sessions := service.NewSessionService(store, ids, dispatcher, logger)
	authService := service.NewAuthService(service.AuthDependencies{
		Store:      store,
		Sessions:   sessions,
		Hasher:     auth.NewPasswordHasher(cfg.Auth.HashPasswords, cfg.Auth.BcryptCost),
		IDs:        ids,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      store,
		IDs:        ids,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	statsService := service.NewStatsService(store)

	renderer, err := view.NewRenderer(cfg.App.Name)
	if err != nil {
		return nil, err
	}
	pages := handlers.NewPages(renderer, notifications, cfg.App.Name)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.ClientTokenTTL())
	scope := auth.NewClientScopeMiddleware(tokens, sessions, auth.CookieConfig{
		Name:   cfg.Auth.ClientCookieName,
		Secure: cfg.Auth.SecureCookies,
	}, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), pages)
	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Backend, store, metrics),
		Pages:       handlers.NewPagesHandler(pages, statsService),
		Auth:        handlers.NewAuthHandler(pages, authService),
		Tickets:     handlers.NewTicketsHandler(pages, ticketService),
		ClientScope: scope,
		Notifier:    notifications,
	})
	return app, nil
}
