package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/api/dto"
	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/service"
	"github.com/spec-kit/ticketapp/internal/view"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

// TicketsHandler manages the ticket list and its create/edit/delete flows.
type TicketsHandler struct {
	pages   *Pages
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(pages *Pages, ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{pages: pages, service: ticketService}
}

// ticketsView carries the optional parts of the tickets page.
type ticketsView struct {
	form    view.TicketForm
	errors  map[string]string
	confirm *view.TicketCard
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	return h.render(c, http.StatusOK, ticketsView{})
}

// NewTicket GET /tickets/new.
func (h *TicketsHandler) NewTicket(c *fiber.Ctx) error {
	form := view.NewTicketForm(view.HeadingCreate, "", "", "", "")
	return h.render(c, http.StatusOK, ticketsView{form: form})
}

// EditTicket GET /tickets/:id/edit.
func (h *TicketsHandler) EditTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.missingOr(c, err)
	}
	return h.render(c, http.StatusOK, ticketsView{form: view.EditForm(*ticket)})
}

// ConfirmDelete GET /tickets/:id/delete asks before removing a ticket.
func (h *TicketsHandler) ConfirmDelete(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.missingOr(c, err)
	}
	card := view.Card(*ticket)
	return h.render(c, http.StatusOK, ticketsView{confirm: &card})
}

// SaveTicket POST /tickets creates a ticket, or updates the one named by the
// form's id.
func (h *TicketsHandler) SaveTicket(c *fiber.Ctx) error {
	var form dto.TicketForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}

	_, err := h.service.Save(c.UserContext(), service.TicketSaveInput{
		ID:          form.ID,
		Title:       form.Title,
		Status:      form.Status,
		Description: form.Description,
	})
	switch {
	case err == nil:
		return redirect(c, auth.PathTickets)
	case apperrors.HasCode(err, apperrors.CodeValidation):
		heading := view.HeadingCreate
		if form.ID != "" {
			heading = view.HeadingEdit
		}
		return h.render(c, http.StatusUnprocessableEntity, ticketsView{
			form:   view.NewTicketForm(heading, form.ID, form.Title, form.Status, form.Description),
			errors: apperrors.FieldMessages(err),
		})
	default:
		return h.missingOr(c, err)
	}
}

// DeleteTicket POST /tickets/:id/delete. Without confirm=yes nothing is removed.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	var form dto.DeleteForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	if !form.Confirmed() {
		return redirect(c, auth.PathTickets)
	}
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.missingOr(c, err)
	}
	return redirect(c, auth.PathTickets)
}

// missingOr sends a vanished ticket back to the list with a toast; other
// errors propagate.
func (h *TicketsHandler) missingOr(c *fiber.Ctx, err error) error {
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return err
	}
	if err := h.pages.Notify(c, domain.NoticeError, service.MsgTicketMissing); err != nil {
		return err
	}
	return redirect(c, auth.PathTickets)
}

func (h *TicketsHandler) render(c *fiber.Ctx, status int, v ticketsView) error {
	tickets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	data := pongo2.Context{
		"tickets": view.Cards(tickets),
		"stats":   service.ComputeStats(tickets),
		"form":    v.form,
		"errors":  v.errors,
	}
	if v.confirm != nil {
		data["confirm"] = v.confirm
	}
	return h.pages.Render(c, status, view.PageTickets, "Tickets", data)
}
