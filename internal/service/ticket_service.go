package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/listing"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// TicketService coordinates ticket workflows. It keeps no state between
// calls: each operation loads the aggregate, applies one transition and
// persists it once.
type TicketService struct {
	clients    repository.ClientRepository
	supports   repository.SupportRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	ClientRepo  repository.ClientRepository
	SupportRepo repository.SupportRepository
	TicketRepo  repository.TicketRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// AddCommentInput describes a comment posted on a ticket. ClientID is
// required when Origin is FromClient, SupportID when it is FromSupport.
type AddCommentInput struct {
	TicketID  string
	Text      string
	Origin    domain.Origin
	ClientID  string
	SupportID string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		clients:    deps.ClientRepo,
		supports:   deps.SupportRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket opens a ticket on behalf of clientID.
func (s *TicketService) CreateTicket(ctx context.Context, title, clientID string) (*CreatedTicket, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	ticket, err := domain.NewTicket(title, client)
	if err != nil {
		return nil, err
	}
	created, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: created.ID(),
		Actor:    clientActor(client.ID),
		Payload: events.TicketCreatedPayload{
			ClientID: client.ID,
			Title:    created.Title(),
			Status:   created.Status(),
		},
	})
	return &CreatedTicket{
		ID:     created.ID(),
		Title:  created.Title(),
		Status: string(created.Status()),
		Client: newClientView(created.Client()),
	}, nil
}

// ListClientTickets returns one page of the tickets owned by clientID.
func (s *TicketService) ListClientTickets(ctx context.Context, clientID string, params listing.Params) (*PaginatedTickets, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	params = params.Normalize()
	tickets, err := s.tickets.ListByClient(ctx, client.ID, params)
	if err != nil {
		return nil, err
	}
	return paginate(params, tickets), nil
}

// ListAllTickets returns one page across every client, for support agents.
func (s *TicketService) ListAllTickets(ctx context.Context, params listing.Params) (*PaginatedTickets, error) {
	params = params.Normalize()
	tickets, err := s.tickets.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginate(params, tickets), nil
}

// GetTicket fetches any ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	view := newTicketView(ticket)
	return &view, nil
}

// GetClientTicket fetches a ticket only if clientID owns it.
func (s *TicketService) GetClientTicket(ctx context.Context, id, clientID string) (*TicketView, error) {
	ticket, err := s.tickets.GetByIDForClient(ctx, id, clientID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	view := newTicketView(ticket)
	return &view, nil
}

// GetSupportTicket fetches a ticket only if supportID is its assigned agent.
func (s *TicketService) GetSupportTicket(ctx context.Context, id, supportID string) (*TicketView, error) {
	ticket, err := s.tickets.GetByIDForSupport(ctx, id, supportID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	view := newTicketView(ticket)
	return &view, nil
}

// AddComment appends a comment and hands the turn to the other party. A
// support agent commenting on an unassigned ticket becomes its agent.
func (s *TicketService) AddComment(ctx context.Context, input AddCommentInput) (*TicketSummary, error) {
	if !input.Origin.Valid() {
		return nil, domain.ErrInvalidComment.WithMessage("unknown comment origin")
	}
	params := domain.CommentParams{Text: strings.TrimSpace(input.Text)}
	var (
		ticket   *domain.Ticket
		err      error
		assigned bool
	)

	switch input.Origin {
	case domain.FromClient:
		if input.ClientID == "" {
			return nil, domain.ErrInvalidComment.WithMessage("client id is required for client comments")
		}
		ticket, err = s.tickets.GetByIDForClient(ctx, input.TicketID, input.ClientID)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, domain.ErrTicketNotFound
		}
		params.IsClientComment = true
		params.Client = ticket.Client()
	case domain.FromSupport:
		if input.SupportID == "" {
			return nil, domain.ErrInvalidComment.WithMessage("support id is required for support comments")
		}
		ticket, err = s.tickets.GetByID(ctx, input.TicketID)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, domain.ErrTicketNotFound
		}
		if !ticket.HasSupport() {
			support, err := s.supports.GetByID(ctx, input.SupportID)
			if err != nil {
				return nil, err
			}
			if support == nil {
				return nil, domain.ErrSupportNotFound
			}
			if err := ticket.AssignSupport(support); err != nil {
				return nil, err
			}
			assigned = true
		} else if ticket.SupportID() != input.SupportID {
			return nil, domain.ErrInvalidSupport
		}
		params.Support = ticket.Support()
	}

	comment, err := domain.NewComment(params)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status()
	if err := ticket.AddComment(comment, input.Origin); err != nil {
		return nil, err
	}
	updated, err := s.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	actor := actorFromOrigin(input.Origin, input.ClientID, input.SupportID)
	if assigned {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketSupportAssigned,
			TicketID: updated.ID(),
			Actor:    actor,
			Payload:  events.TicketSupportAssignedPayload{SupportID: updated.SupportID()},
		})
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: updated.ID(),
		Actor:    actor,
		Payload: events.TicketCommentAddedPayload{
			CommentID:       comment.ID(),
			IsClientComment: comment.IsClientComment(),
			OldStatus:       oldStatus,
			NewStatus:       updated.Status(),
			TextPreview:     stringPreview(comment.Text(), 120),
		},
	})
	summary := newTicketSummary(updated)
	return &summary, nil
}

// CancelTicket cancels a ticket. For FromClient, actorID must be the owning
// client; for FromSupport it identifies the agent on the emitted event.
func (s *TicketService) CancelTicket(ctx context.Context, ticketID string, origin domain.Origin, actorID string) (*TicketSummary, error) {
	return s.closeTicket(ctx, ticketID, origin, actorID, events.EventTicketCancelled, (*domain.Ticket).Cancel)
}

// FinishTicket marks a ticket finished, with the same scoping as CancelTicket.
func (s *TicketService) FinishTicket(ctx context.Context, ticketID string, origin domain.Origin, actorID string) (*TicketSummary, error) {
	return s.closeTicket(ctx, ticketID, origin, actorID, events.EventTicketFinished, (*domain.Ticket).Finish)
}

func (s *TicketService) closeTicket(ctx context.Context, ticketID string, origin domain.Origin, actorID string, eventType events.EventType, apply func(*domain.Ticket, domain.Origin) error) (*TicketSummary, error) {
	ticket, err := s.loadForOrigin(ctx, ticketID, origin, actorID)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status()
	if err := apply(ticket, origin); err != nil {
		return nil, err
	}
	updated, err := s.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	clientID, supportID := "", ""
	if origin == domain.FromClient {
		clientID = actorID
	} else {
		supportID = actorID
	}
	s.publishEvent(ctx, events.Event{
		Type:     eventType,
		TicketID: updated.ID(),
		Actor:    actorFromOrigin(origin, clientID, supportID),
		Payload: events.TicketClosedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status(),
		},
	})
	summary := newTicketSummary(updated)
	return &summary, nil
}

// AssignSupport binds supportID to a ticket that has no agent yet.
func (s *TicketService) AssignSupport(ctx context.Context, supportID, ticketID string) (*TicketSummary, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	support, err := s.supports.GetByID(ctx, supportID)
	if err != nil {
		return nil, err
	}
	if support == nil {
		return nil, domain.ErrSupportNotFound
	}
	if err := ticket.AssignSupport(support); err != nil {
		return nil, err
	}
	updated, err := s.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketSupportAssigned,
		TicketID: updated.ID(),
		Actor:    supportActor(support.ID),
		Payload:  events.TicketSupportAssignedPayload{SupportID: support.ID},
	})
	summary := newTicketSummary(updated)
	return &summary, nil
}

// loadForOrigin scopes the lookup to the owning client for client actions.
func (s *TicketService) loadForOrigin(ctx context.Context, ticketID string, origin domain.Origin, clientID string) (*domain.Ticket, error) {
	if !origin.Valid() {
		return nil, domain.ErrTicketNotFound
	}
	var (
		ticket *domain.Ticket
		err    error
	)
	if origin == domain.FromClient {
		ticket, err = s.tickets.GetByIDForClient(ctx, ticketID, clientID)
	} else {
		ticket, err = s.tickets.GetByID(ctx, ticketID)
	}
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}

func paginate(params listing.Params, tickets []*domain.Ticket) *PaginatedTickets {
	views := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, newTicketView(t))
	}
	return &PaginatedTickets{
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: len(views),
		Tickets:    views,
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	// The write already committed; a failing subscriber must not fail it.
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err),
		)
	}
}

func clientActor(clientID string) events.Actor {
	return events.Actor{
		Type:     domain.FromClient,
		ClientID: &clientID,
	}
}

func supportActor(supportID string) events.Actor {
	return events.Actor{
		Type:      domain.FromSupport,
		SupportID: &supportID,
	}
}

func actorFromOrigin(origin domain.Origin, clientID, supportID string) events.Actor {
	switch origin {
	case domain.FromSupport:
		if supportID == "" {
			return events.Actor{Type: domain.FromSupport}
		}
		return supportActor(supportID)
	default:
		return clientActor(clientID)
	}
}

// stringPreview shortens body to at most max runes.
func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
