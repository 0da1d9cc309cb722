package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func testClient() *domain.Client {
	return &domain.Client{User: domain.User{ID: "client-1", Name: "Ana", Email: "ana@example.com", Role: domain.UserRoleClient}}
}

func testSupport(id string) *domain.Support {
	return &domain.Support{User: domain.User{ID: id, Name: "Bruno", Email: id + "@example.com", Role: domain.UserRoleSupport}}
}

func ticketIn(t *testing.T, status domain.TicketStatus) *domain.Ticket {
	t.Helper()
	return domain.RehydrateTicket(domain.TicketRecord{
		ID:     "ticket-1",
		Title:  "printer",
		Client: testClient(),
		Status: status,
	})
}

func commentFrom(t *testing.T, origin domain.Origin) domain.Comment {
	t.Helper()
	params := domain.CommentParams{Text: "hello"}
	if origin == domain.FromClient {
		params.IsClientComment = true
		params.Client = testClient()
	} else {
		params.Support = testSupport("support-1")
	}
	c, err := domain.NewComment(params)
	require.NoError(t, err)
	return c
}

func TestNewTicket(t *testing.T) {
	t.Parallel()

	ticket, err := domain.NewTicket("  Printer broken  ", testClient())
	require.NoError(t, err)
	require.NotEmpty(t, ticket.ID())
	require.Equal(t, "Printer broken", ticket.Title())
	require.Equal(t, domain.TicketStatusNew, ticket.Status())
	require.Equal(t, "client-1", ticket.ClientID())
	require.False(t, ticket.HasSupport())
	require.Empty(t, ticket.Comments())
	require.False(t, ticket.CreatedAt().IsZero())
}

func TestNewTicketRejectsSupportRole(t *testing.T) {
	t.Parallel()

	impostor := &domain.Client{User: domain.User{ID: "x", Role: domain.UserRoleSupport}}
	_, err := domain.NewTicket("title", impostor)
	require.ErrorIs(t, err, domain.ErrSupportCannotCreateTicket)

	_, err = domain.NewTicket("title", nil)
	require.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestCommentTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status domain.TicketStatus
		origin domain.Origin
		want   domain.TicketStatus
		err    error
	}{
		{domain.TicketStatusNew, domain.FromClient, domain.TicketStatusWaitingSupport, nil},
		{domain.TicketStatusNew, domain.FromSupport, domain.TicketStatusWaitingClient, nil},
		{domain.TicketStatusWaitingClient, domain.FromClient, domain.TicketStatusWaitingSupport, nil},
		{domain.TicketStatusWaitingClient, domain.FromSupport, domain.TicketStatusWaitingClient, nil},
		{domain.TicketStatusWaitingSupport, domain.FromClient, domain.TicketStatusWaitingSupport, nil},
		{domain.TicketStatusWaitingSupport, domain.FromSupport, domain.TicketStatusWaitingClient, nil},
		{domain.TicketStatusCancelled, domain.FromClient, domain.TicketStatusCancelled, domain.ErrTicketCancelled},
		{domain.TicketStatusCancelled, domain.FromSupport, domain.TicketStatusCancelled, domain.ErrTicketCancelled},
		{domain.TicketStatusFinished, domain.FromClient, domain.TicketStatusFinished, domain.ErrTicketFinished},
		{domain.TicketStatusFinished, domain.FromSupport, domain.TicketStatusFinished, domain.ErrTicketFinished},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.status)+"/"+string(tc.origin), func(t *testing.T) {
			t.Parallel()

			ticket := ticketIn(t, tc.status)
			err := ticket.AddComment(commentFrom(t, tc.origin), tc.origin)
			require.Equal(t, tc.want, ticket.Status())
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Empty(t, ticket.Comments())
				return
			}
			require.NoError(t, err)
			require.Len(t, ticket.Comments(), 1)
		})
	}
}

func TestNextCommentStatusUnknownOrigin(t *testing.T) {
	t.Parallel()

	status, err := domain.NextCommentStatus(domain.TicketStatusNew, domain.Origin("FromRobot"))
	require.ErrorIs(t, err, domain.ErrInvalidComment)
	require.Equal(t, domain.TicketStatusNew, status)
}

func TestCancelAndFinish(t *testing.T) {
	t.Parallel()

	open := []domain.TicketStatus{domain.TicketStatusNew, domain.TicketStatusWaitingClient, domain.TicketStatusWaitingSupport}
	for _, status := range open {
		for _, origin := range []domain.Origin{domain.FromClient, domain.FromSupport} {
			ticket := ticketIn(t, status)
			require.NoError(t, ticket.Cancel(origin))
			require.Equal(t, domain.TicketStatusCancelled, ticket.Status())

			ticket = ticketIn(t, status)
			require.NoError(t, ticket.Finish(origin))
			require.Equal(t, domain.TicketStatusFinished, ticket.Status())
		}
	}

	cancelled := ticketIn(t, domain.TicketStatusCancelled)
	require.ErrorIs(t, cancelled.Cancel(domain.FromClient), domain.ErrTicketAlreadyCancelled)
	require.ErrorIs(t, cancelled.Finish(domain.FromSupport), domain.ErrTicketAlreadyCancelled)
	require.Equal(t, domain.TicketStatusCancelled, cancelled.Status())

	finished := ticketIn(t, domain.TicketStatusFinished)
	require.ErrorIs(t, finished.Cancel(domain.FromSupport), domain.ErrTicketAlreadyFinished)
	require.ErrorIs(t, finished.Finish(domain.FromClient), domain.ErrTicketAlreadyFinished)
	require.Equal(t, domain.TicketStatusFinished, finished.Status())
}

func TestAssignSupport(t *testing.T) {
	t.Parallel()

	ticket := ticketIn(t, domain.TicketStatusNew)
	require.ErrorIs(t, ticket.AssignSupport(nil), domain.ErrSupportNotFound)

	require.NoError(t, ticket.AssignSupport(testSupport("support-1")))
	require.Equal(t, "support-1", ticket.SupportID())

	err := ticket.AssignSupport(testSupport("support-2"))
	require.ErrorIs(t, err, domain.ErrTicketAlreadyHasSupport)
	require.Equal(t, "support-1", ticket.SupportID())
}

func TestRecordRoundTripKeepsComments(t *testing.T) {
	t.Parallel()

	ticket, err := domain.NewTicket("title", testClient())
	require.NoError(t, err)
	require.NoError(t, ticket.AddComment(commentFrom(t, domain.FromClient), domain.FromClient))

	restored := domain.RehydrateTicket(ticket.Record())
	require.Equal(t, ticket.ID(), restored.ID())
	require.Equal(t, ticket.Status(), restored.Status())
	require.Len(t, restored.Comments(), 1)
	require.Equal(t, ticket.Comments()[0].ID(), restored.Comments()[0].ID())
}

func TestCommentsReturnsCopy(t *testing.T) {
	t.Parallel()

	ticket := ticketIn(t, domain.TicketStatusNew)
	require.NoError(t, ticket.AddComment(commentFrom(t, domain.FromClient), domain.FromClient))

	comments := ticket.Comments()
	comments[0] = domain.Comment{}
	require.NotEmpty(t, ticket.Comments()[0].ID())
}

func TestErrorMatchesByKind(t *testing.T) {
	t.Parallel()

	custom := domain.ErrInvalidComment.WithMessage("text missing")
	require.True(t, errors.Is(custom, domain.ErrInvalidComment))
	require.False(t, errors.Is(custom, domain.ErrTicketNotFound))
	require.Equal(t, "text missing", custom.Error())
}
