package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/service"
)

// SupportTicketsHandler handles support agent ticket endpoints.
type SupportTicketsHandler struct {
	tickets *service.TicketService
}

// NewSupportTicketsHandler constructs handler.
func NewSupportTicketsHandler(ticketService *service.TicketService) *SupportTicketsHandler {
	return &SupportTicketsHandler{tickets: ticketService}
}

// ListTickets GET /support/tickets.
func (h *SupportTicketsHandler) ListTickets(c *fiber.Ctx) error {
	if _, err := principal(c); err != nil {
		return err
	}
	page, err := h.tickets.ListAllTickets(c.UserContext(), listParams(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": page})
}

// GetTicket GET /support/tickets/:id.
func (h *SupportTicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, err := principal(c); err != nil {
		return err
	}
	id, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// AddComment POST /support/tickets/:id/comments.
func (h *SupportTicketsHandler) AddComment(c *fiber.Ctx) error {
	return addComment(c, h.tickets)
}

// AssignTicket POST /support/tickets/:id/assign binds the caller as agent.
func (h *SupportTicketsHandler) AssignTicket(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.AssignSupport(c.UserContext(), p.ID(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// CancelTicket POST /support/tickets/:id/cancel.
func (h *SupportTicketsHandler) CancelTicket(c *fiber.Ctx) error {
	return closeTicket(c, h.tickets.CancelTicket)
}

// FinishTicket POST /support/tickets/:id/finish.
func (h *SupportTicketsHandler) FinishTicket(c *fiber.Ctx) error {
	return closeTicket(c, h.tickets.FinishTicket)
}
