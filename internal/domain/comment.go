package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentParams carries every field a comment needs. NewComment validates the
// whole value at once, so a partially attributed comment never exists.
type CommentParams struct {
	Text            string
	IsClientComment bool
	Client          *Client
	Support         *Support
}

// Comment is a single message on a ticket, authored by either the ticket's
// client or a support agent.
type Comment struct {
	id              string
	text            string
	isClientComment bool
	client          *Client
	support         *Support
	createdAt       time.Time
}

// NewComment builds a comment whose author matches its kind.
func NewComment(params CommentParams) (Comment, error) {
	if params.IsClientComment {
		if params.Client == nil || params.Client.ID == "" {
			return Comment{}, ErrInvalidComment.WithMessage("client must be specified for client comments")
		}
		if params.Support != nil {
			return Comment{}, ErrInvalidComment.WithMessage("client comments cannot reference a support")
		}
	} else {
		if params.Support == nil || params.Support.ID == "" {
			return Comment{}, ErrInvalidComment.WithMessage("support must be specified for support comments")
		}
		if params.Client != nil {
			return Comment{}, ErrInvalidComment.WithMessage("support comments cannot reference a client")
		}
	}

	return Comment{
		id:              uuid.NewString(),
		text:            params.Text,
		isClientComment: params.IsClientComment,
		client:          params.Client,
		support:         params.Support,
		createdAt:       time.Now().UTC(),
	}, nil
}

// CommentRecord is the persisted form of a comment.
type CommentRecord struct {
	ID              string
	Text            string
	IsClientComment bool
	Client          *Client
	Support         *Support
	CreatedAt       time.Time
}

// RehydrateComment rebuilds a stored comment without re-running validation.
func RehydrateComment(rec CommentRecord) Comment {
	return Comment{
		id:              rec.ID,
		text:            rec.Text,
		isClientComment: rec.IsClientComment,
		client:          rec.Client,
		support:         rec.Support,
		createdAt:       rec.CreatedAt,
	}
}

func (c Comment) ID() string { return c.id }
func (c Comment) Text() string { return c.text }
func (c Comment) IsClientComment() bool { return c.isClientComment }
func (c Comment) Client() *Client { return c.client }
func (c Comment) Support() *Support { return c.support }
func (c Comment) CreatedAt() time.Time { return c.createdAt }

// ClientID returns the authoring client id, or "" for support comments.
func (c Comment) ClientID() string {
	if c.client == nil {
		return ""
	}
	return c.client.ID
}

// SupportID returns the authoring support id, or "" for client comments.
func (c Comment) SupportID() string {
	if c.support == nil {
		return ""
	}
	return c.support.ID
}

// Record returns the persisted form of the comment.
func (c Comment) Record() CommentRecord {
	return CommentRecord{
		ID:              c.id,
		Text:            c.text,
		IsClientComment: c.isClientComment,
		Client:          c.client,
		Support:         c.support,
		CreatedAt:       c.createdAt,
	}
}
