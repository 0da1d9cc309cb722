package domain

// ErrorKind names a failure category the boundary layer can map to a response.
type ErrorKind string

const (
	KindClientNotFound            ErrorKind = "CLIENT_NOT_FOUND"
	KindSupportNotFound           ErrorKind = "SUPPORT_NOT_FOUND"
	KindTicketNotFound            ErrorKind = "TICKET_NOT_FOUND"
	KindTicketAlreadyHasSupport   ErrorKind = "TICKET_ALREADY_HAS_SUPPORT"
	KindTicketAlreadyCancelled    ErrorKind = "TICKET_ALREADY_CANCELLED"
	KindTicketAlreadyFinished     ErrorKind = "TICKET_ALREADY_FINISHED"
	KindTicketCancelled           ErrorKind = "TICKET_CANCELLED"
	KindTicketFinished            ErrorKind = "TICKET_FINISHED"
	KindSupportCannotCreateTicket ErrorKind = "SUPPORT_CANNOT_CREATE_TICKET"
	KindInvalidSupport            ErrorKind = "INVALID_SUPPORT"
	KindInvalidComment            ErrorKind = "INVALID_COMMENT"
	KindConcurrentUpdate          ErrorKind = "CONCURRENT_UPDATE"
)

// Error is a named domain failure. Two errors match under errors.Is when
// their kinds are equal, so callers may return copies with a custom message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target carries the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithMessage returns a copy of e with a different message and the same kind.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Message: message}
}

var (
	ErrClientNotFound            = &Error{Kind: KindClientNotFound, Message: "client not found"}
	ErrSupportNotFound           = &Error{Kind: KindSupportNotFound, Message: "support not found"}
	ErrTicketNotFound            = &Error{Kind: KindTicketNotFound, Message: "ticket not found"}
	ErrTicketAlreadyHasSupport   = &Error{Kind: KindTicketAlreadyHasSupport, Message: "this ticket already has a support attendant"}
	ErrTicketAlreadyCancelled    = &Error{Kind: KindTicketAlreadyCancelled, Message: "this ticket was already cancelled"}
	ErrTicketAlreadyFinished     = &Error{Kind: KindTicketAlreadyFinished, Message: "this ticket was already finished"}
	ErrTicketCancelled           = &Error{Kind: KindTicketCancelled, Message: "this ticket was cancelled"}
	ErrTicketFinished            = &Error{Kind: KindTicketFinished, Message: "this ticket was finished"}
	ErrSupportCannotCreateTicket = &Error{Kind: KindSupportCannotCreateTicket, Message: "supports cannot create new tickets, only clients"}
	ErrInvalidSupport            = &Error{Kind: KindInvalidSupport, Message: "you don't have permission to access this ticket, it already has a support"}
	ErrInvalidComment            = &Error{Kind: KindInvalidComment, Message: "invalid comment"}
	ErrConcurrentUpdate          = &Error{Kind: KindConcurrentUpdate, Message: "ticket was modified by another request"}
)
