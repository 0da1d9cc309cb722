package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/listing"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok || p.ID() == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}

// ticketIDParam returns the canonical form of the :id route parameter.
func ticketIDParam(c *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}
	return id.String(), nil
}

func listParams(c *fiber.Ctx) listing.Params {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return listing.Default()
	}
	return listing.Parse(q.Page, q.PerPage, q.OrderBy, q.Order)
}

func commentText(c *fiber.Ctx) (string, error) {
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", apperrors.NewValidationError("text required", nil)
	}
	return text, nil
}

type closeFunc func(ctx context.Context, ticketID string, origin domain.Origin, actorID string) (*service.TicketSummary, error)

// closeTicket applies a cancel or finish on behalf of the caller. The
// caller's role decides the origin and therefore the ownership scoping.
func closeTicket(c *fiber.Ctx, apply closeFunc) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	ticket, err := apply(c.UserContext(), id, p.Origin(), p.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// addComment posts the request body as a comment from the caller.
func addComment(c *fiber.Ctx, tickets *service.TicketService) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	text, err := commentText(c)
	if err != nil {
		return err
	}
	input := service.AddCommentInput{TicketID: id, Text: text, Origin: p.Origin()}
	if input.Origin == domain.FromSupport {
		input.SupportID = p.ID()
	} else {
		input.ClientID = p.ID()
	}
	ticket, err := tickets.AddComment(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}
