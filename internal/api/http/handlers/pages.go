package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/service"
	"github.com/spec-kit/ticketapp/internal/view"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

// PageRenderer executes a named page template.
type PageRenderer interface {
	Render(name string, data pongo2.Context) (string, error)
}

// Pages renders full pages with the shared layout data: title, session state
// and pending toasts.
type Pages struct {
	renderer PageRenderer
	notices  *service.NotificationService
	appName  string
}

// NewPages builds the page renderer used by every handler.
func NewPages(renderer PageRenderer, notices *service.NotificationService, appName string) *Pages {
	return &Pages{renderer: renderer, notices: notices, appName: appName}
}

func (p *Pages) title(heading string) string {
	if heading == "" {
		return p.appName
	}
	return heading + " - " + p.appName
}

// Render writes page with status. The scope's toasts are shown on it and
// removed only once the page has rendered.
func (p *Pages) Render(c *fiber.Ctx, status int, page, heading string, data pongo2.Context) error {
	notices, err := p.notices.Pending(c.UserContext())
	if err != nil {
		return err
	}
	_, authenticated := auth.SessionFromContext(c)

	ctx := pongo2.Context{
		"title":         p.title(heading),
		"authenticated": authenticated,
		"notices":       view.Notices(notices),
	}
	ctx.Update(data)

	html, err := p.renderer.Render(page, ctx)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := p.notices.Ack(c.UserContext(), len(notices)); err != nil {
		return err
	}
	c.Status(status)
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// RenderError writes the error page without touching storage.
func (p *Pages) RenderError(c *fiber.Ctx, status int, message string) error {
	html, err := p.renderer.Render(view.PageError, pongo2.Context{
		"title":   p.title("Error"),
		"message": message,
	})
	if err != nil {
		return err
	}
	c.Status(status)
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// Notify queues a toast for the next page of this client.
func (p *Pages) Notify(c *fiber.Ctx, level domain.NoticeLevel, message string) error {
	return p.notices.Notify(c.UserContext(), level, message)
}

// redirect answers a form post or guarded load with 303 See Other.
func redirect(c *fiber.Ctx, to string) error {
	return c.Redirect(to, http.StatusSeeOther)
}
