package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTicketSupportAssigned EventType = "ticket_support_assigned"
	EventTicketCancelled       EventType = "ticket_cancelled"
	EventTicketFinished        EventType = "ticket_finished"
)

// AllEventTypes lists every event the ticket workflow emits.
var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketCommentAdded,
	EventTicketSupportAssigned,
	EventTicketCancelled,
	EventTicketFinished,
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type      domain.Origin `json:"type"`
	ClientID  *string       `json:"client_id,omitempty"`
	SupportID *string       `json:"support_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ClientID string              `json:"client_id"`
	Title    string              `json:"title"`
	Status   domain.TicketStatus `json:"status"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID       string              `json:"comment_id"`
	IsClientComment bool                `json:"is_client_comment"`
	OldStatus       domain.TicketStatus `json:"old_status"`
	NewStatus       domain.TicketStatus `json:"new_status"`
	TextPreview     string              `json:"text_preview"`
}

// TicketSupportAssignedPayload payload.
type TicketSupportAssignedPayload struct {
	SupportID string `json:"support_id"`
}

// TicketClosedPayload payload for cancel and finish events.
type TicketClosedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}
