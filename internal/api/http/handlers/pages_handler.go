package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/service"
	"github.com/spec-kit/ticketapp/internal/view"
)

// PagesHandler serves the landing, dashboard and not-found pages.
type PagesHandler struct {
	pages *Pages
	stats *service.StatsService
}

// NewPagesHandler constructs handler.
func NewPagesHandler(pages *Pages, stats *service.StatsService) *PagesHandler {
	return &PagesHandler{pages: pages, stats: stats}
}

// Landing GET /.
func (h *PagesHandler) Landing(c *fiber.Ctx) error {
	return h.pages.Render(c, http.StatusOK, view.PageLanding, "", nil)
}

// Dashboard GET /dashboard.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.stats.Current(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, view.PageDashboard, "Dashboard", pongo2.Context{"stats": stats})
}

// NotFound renders the landing page's not-found variant for unknown paths.
func (h *PagesHandler) NotFound(c *fiber.Ctx) error {
	return h.pages.Render(c, http.StatusNotFound, view.PageLanding, "Not Found", pongo2.Context{"not_found": true})
}
