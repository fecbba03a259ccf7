package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/api/http/handlers"
	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/observability"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, pages *handlers.Pages) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics, clientScopeField))
	app.Use(errorHandlingMiddleware(logger, metrics, pages))
}

func clientScopeField(c *fiber.Ctx) zap.Field {
	return zap.String("scope", auth.ScopeFromContext(c))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware turns returned errors and panics into an error page
// for browsers, or the JSON error envelope for API clients.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, pages *handlers.Pages) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			domainErr := apperrors.ToDomainError(err)
			if metrics != nil {
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			}
			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed", zap.Error(domainErr))
			}
			err = nil

			if pages != nil && c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMETextHTML {
				renderErr := pages.RenderError(c, domainErr.HTTPStatus, domainErr.Message)
				if renderErr == nil {
					return
				}
				logger.Error("rendering error page", zap.Error(renderErr))
			}

			response := fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}}
			if len(domainErr.Details) > 0 {
				response["error"].(fiber.Map)["details"] = domainErr.Details
			}
			c.Status(domainErr.HTTPStatus)
			_ = c.JSON(response)
		}()
		return c.Next()
	}
}
