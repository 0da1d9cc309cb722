package service

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ClientView is the read projection of a client account.
type ClientView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SupportView is the read projection of a support account.
type SupportView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CommentView is the read projection of a comment.
type CommentView struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	IsClientComment bool      `json:"is_client_comment"`
	ClientID        *string   `json:"client_id,omitempty"`
	SupportID       *string   `json:"support_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TicketView is the full ticket projection, comment thread included.
type TicketView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    string        `json:"ticket_status"`
	Client    ClientView    `json:"client"`
	Support   *SupportView  `json:"support"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TicketSummary is the projection returned by write operations; it omits comments.
type TicketSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    string       `json:"ticket_status"`
	Client    ClientView   `json:"client"`
	Support   *SupportView `json:"support"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CreatedTicket is returned by CreateTicket.
type CreatedTicket struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status string     `json:"ticket_status"`
	Client ClientView `json:"client"`
}

// PaginatedTickets is one page of a ticket listing.
type PaginatedTickets struct {
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalItems int          `json:"total_items"`
	Tickets    []TicketView `json:"tickets"`
}

func newClientView(client *domain.Client) ClientView {
	if client == nil {
		return ClientView{}
	}
	return ClientView{
		ID:    client.ID,
		Name:  client.Name,
		Email: client.Email,
		Role:  string(client.Role),
	}
}

func newSupportView(support *domain.Support) *SupportView {
	if support == nil || support.ID == "" {
		return nil
	}
	return &SupportView{
		ID:    support.ID,
		Name:  support.Name,
		Email: support.Email,
		Role:  string(support.Role),
	}
}

func newCommentView(comment domain.Comment) CommentView {
	view := CommentView{
		ID:              comment.ID(),
		Text:            comment.Text(),
		IsClientComment: comment.IsClientComment(),
		CreatedAt:       comment.CreatedAt(),
	}
	if id := comment.ClientID(); id != "" {
		view.ClientID = &id
	}
	if id := comment.SupportID(); id != "" {
		view.SupportID = &id
	}
	return view
}

func newTicketView(ticket *domain.Ticket) TicketView {
	comments := ticket.Comments()
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c))
	}
	return TicketView{
		ID:        ticket.ID(),
		Title:     ticket.Title(),
		Status:    string(ticket.Status()),
		Client:    newClientView(ticket.Client()),
		Support:   newSupportView(ticket.Support()),
		Comments:  views,
		CreatedAt: ticket.CreatedAt(),
		UpdatedAt: ticket.UpdatedAt(),
	}
}

func newTicketSummary(ticket *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:        ticket.ID(),
		Title:     ticket.Title(),
		Status:    string(ticket.Status()),
		Client:    newClientView(ticket.Client()),
		Support:   newSupportView(ticket.Support()),
		CreatedAt: ticket.CreatedAt(),
		UpdatedAt: ticket.UpdatedAt(),
	}
}
