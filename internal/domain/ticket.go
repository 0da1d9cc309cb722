package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew            TicketStatus = "New"
	TicketStatusWaitingSupport TicketStatus = "Waiting_Support"
	TicketStatusWaitingClient  TicketStatus = "Waiting_Client"
	TicketStatusCancelled      TicketStatus = "Cancelled"
	TicketStatusFinished       TicketStatus = "Finished"
)

// Origin identifies which party performed an action.
type Origin string

const (
	FromClient  Origin = "FromClient"
	FromSupport Origin = "FromSupport"
)

// Valid reports whether o is a known origin.
func (o Origin) Valid() bool {
	return o == FromClient || o == FromSupport
}

type transitionKey struct {
	status TicketStatus
	origin Origin
}

type transition struct {
	next TicketStatus
	err  error
}

// commentTransitions is total over (status, origin): a comment hands the turn
// to the other party, and terminal states reject it.
var commentTransitions = map[transitionKey]transition{
	{TicketStatusNew, FromClient}:             {next: TicketStatusWaitingSupport},
	{TicketStatusNew, FromSupport}:            {next: TicketStatusWaitingClient},
	{TicketStatusWaitingClient, FromClient}:   {next: TicketStatusWaitingSupport},
	{TicketStatusWaitingClient, FromSupport}:  {next: TicketStatusWaitingClient},
	{TicketStatusWaitingSupport, FromClient}:  {next: TicketStatusWaitingSupport},
	{TicketStatusWaitingSupport, FromSupport}: {next: TicketStatusWaitingClient},
	{TicketStatusCancelled, FromClient}:       {err: ErrTicketCancelled},
	{TicketStatusCancelled, FromSupport}:      {err: ErrTicketCancelled},
	{TicketStatusFinished, FromClient}:        {err: ErrTicketFinished},
	{TicketStatusFinished, FromSupport}:       {err: ErrTicketFinished},
}

// closingGuards rejects cancel and finish once either has fired.
var closingGuards = map[TicketStatus]error{
	TicketStatusCancelled: ErrTicketAlreadyCancelled,
	TicketStatusFinished:  ErrTicketAlreadyFinished,
}

// NextCommentStatus returns the status a ticket moves to when a comment from
// origin arrives in status current.
func NextCommentStatus(current TicketStatus, origin Origin) (TicketStatus, error) {
	t, ok := commentTransitions[transitionKey{current, origin}]
	if !ok {
		return current, ErrInvalidComment.WithMessage("unknown comment origin or ticket status")
	}
	if t.err != nil {
		return current, t.err
	}
	return t.next, nil
}

// Ticket is the aggregate for support requests. Its fields are only changed
// through methods so the lifecycle rules cannot be bypassed.
type Ticket struct {
	id        string
	title     string
	client    *Client
	support   *Support
	status    TicketStatus
	comments  []Comment
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewTicket opens a ticket for client. Only client-role accounts may open tickets.
func NewTicket(title string, client *Client) (*Ticket, error) {
	now := time.Now().UTC()
	t := &Ticket{
		id:        uuid.NewString(),
		title:     strings.TrimSpace(title),
		status:    TicketStatusNew,
		createdAt: now,
		updatedAt: now,
	}
	if err := t.setClient(client); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Ticket) setClient(client *Client) error {
	if client == nil {
		return ErrClientNotFound
	}
	if client.Role != UserRoleClient {
		return ErrSupportCannotCreateTicket
	}
	t.client = client
	return nil
}

// AssignSupport binds a support agent. A ticket keeps its first agent for life.
func (t *Ticket) AssignSupport(support *Support) error {
	if support == nil || support.ID == "" {
		return ErrSupportNotFound
	}
	if t.HasSupport() {
		return ErrTicketAlreadyHasSupport
	}
	t.support = support
	t.touch()
	return nil
}

// AddComment appends comment and moves the ticket according to origin.
// On failure neither the status nor the comment list changes.
func (t *Ticket) AddComment(comment Comment, origin Origin) error {
	next, err := NextCommentStatus(t.status, origin)
	if err != nil {
		return err
	}
	t.status = next
	t.comments = append(t.comments, comment)
	t.touch()
	return nil
}

// Cancel closes the ticket as cancelled. Origin does not affect the outcome.
func (t *Ticket) Cancel(origin Origin) error {
	return t.close(TicketStatusCancelled)
}

// Finish closes the ticket as finished. Origin does not affect the outcome.
func (t *Ticket) Finish(origin Origin) error {
	return t.close(TicketStatusFinished)
}

func (t *Ticket) close(target TicketStatus) error {
	if err, closed := closingGuards[t.status]; closed {
		return err
	}
	t.status = target
	t.touch()
	return nil
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now().UTC()
}

func (t *Ticket) ID() string { return t.id }
func (t *Ticket) Title() string { return t.title }
func (t *Ticket) Client() *Client { return t.client }
func (t *Ticket) Support() *Support { return t.support }
func (t *Ticket) Status() TicketStatus { return t.status }
func (t *Ticket) Version() int { return t.version }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }

// ClientID returns the owning client's id.
func (t *Ticket) ClientID() string {
	if t.client == nil {
		return ""
	}
	return t.client.ID
}

// SupportID returns the assigned support's id, or "" when unassigned.
func (t *Ticket) SupportID() string {
	if t.support == nil {
		return ""
	}
	return t.support.ID
}

// HasSupport reports whether a support agent is assigned.
func (t *Ticket) HasSupport() bool {
	return t.SupportID() != ""
}

// Comments returns a copy of the comment thread in insertion order.
func (t *Ticket) Comments() []Comment {
	out := make([]Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// TicketRecord is the persisted form of a ticket aggregate.
type TicketRecord struct {
	ID        string
	Title     string
	Client    *Client
	Support   *Support
	Status    TicketStatus
	Comments  []CommentRecord
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record returns the persisted form of the aggregate.
func (t *Ticket) Record() TicketRecord {
	comments := make([]CommentRecord, 0, len(t.comments))
	for _, c := range t.comments {
		comments = append(comments, c.Record())
	}
	return TicketRecord{
		ID:        t.id,
		Title:     t.title,
		Client:    t.client,
		Support:   t.support,
		Status:    t.status,
		Comments:  comments,
		Version:   t.version,
		CreatedAt: t.createdAt,
		UpdatedAt: t.updatedAt,
	}
}

// RehydrateTicket rebuilds an aggregate from storage.
func RehydrateTicket(rec TicketRecord) *Ticket {
	comments := make([]Comment, 0, len(rec.Comments))
	for _, c := range rec.Comments {
		comments = append(comments, RehydrateComment(c))
	}
	return &Ticket{
		id:        rec.ID,
		title:     rec.Title,
		client:    rec.Client,
		support:   rec.Support,
		status:    rec.Status,
		comments:  comments,
		version:   rec.Version,
		createdAt: rec.CreatedAt,
		updatedAt: rec.UpdatedAt,
	}
}
