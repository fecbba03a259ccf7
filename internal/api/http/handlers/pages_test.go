package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/service"
	"github.com/spec-kit/ticketapp/internal/view"
)

type brokenRenderer struct{}

func (brokenRenderer) Render(string, pongo2.Context) (string, error) {
	return "", errors.New("template broken")
}

func renderLanding(ctx context.Context, t *testing.T, renderer PageRenderer, notices *service.NotificationService) (*http.Response, error) {
	t.Helper()
	pages := NewPages(renderer, notices, "Ticketing App")
	var renderErr error
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.SetUserContext(ctx)
		renderErr = pages.Render(c, http.StatusOK, view.PageLanding, "", nil)
		return renderErr
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	return resp, renderErr
}

func newNotices(t *testing.T) (*service.NotificationService, context.Context) {
	t.Helper()
	logger := zap.NewNop()
	store := repository.NewStorage(repository.NewMemoryStore(), logger)
	notices := service.NewNotificationService(events.NewInMemoryDispatcher(), store, logger)
	ctx := repository.WithScope(context.Background(), "scope-a")
	require.NoError(t, notices.Notify(ctx, domain.NoticeSuccess, "Ticket created."))
	return notices, ctx
}

func TestRenderKeepsToastsWhenPageFails(t *testing.T) {
	notices, ctx := newNotices(t)

	_, err := renderLanding(ctx, t, brokenRenderer{}, notices)
	assert.Error(t, err)

	pending, err := notices.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Ticket created.", pending[0].Message)
}

func TestRenderShowsToastsOnce(t *testing.T) {
	notices, ctx := newNotices(t)
	renderer, err := view.NewRenderer("Ticketing App")
	require.NoError(t, err)

	resp, err := renderLanding(ctx, t, renderer, notices)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Ticket created.")

	pending, err := notices.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
