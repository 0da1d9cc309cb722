package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestNewCommentValidatesAuthor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		params  domain.CommentParams
		message string
	}{
		{
			name:    "client comment without client",
			params:  domain.CommentParams{Text: "hi", IsClientComment: true},
			message: "client must be specified for client comments",
		},
		{
			name:    "client comment with support",
			params:  domain.CommentParams{Text: "hi", IsClientComment: true, Client: testClient(), Support: testSupport("s")},
			message: "client comments cannot reference a support",
		},
		{
			name:    "support comment without support",
			params:  domain.CommentParams{Text: "hi"},
			message: "support must be specified for support comments",
		},
		{
			name:    "support comment with client",
			params:  domain.CommentParams{Text: "hi", Support: testSupport("s"), Client: testClient()},
			message: "support comments cannot reference a client",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewComment(tc.params)
			require.ErrorIs(t, err, domain.ErrInvalidComment)
			require.EqualError(t, err, tc.message)
		})
	}
}

func TestNewCommentAccepted(t *testing.T) {
	t.Parallel()

	c, err := domain.NewComment(domain.CommentParams{Text: "on it", Support: testSupport("support-9")})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID())
	require.False(t, c.IsClientComment())
	require.Equal(t, "support-9", c.SupportID())
	require.Empty(t, c.ClientID())
	require.Equal(t, "on it", c.Text())
	require.False(t, c.CreatedAt().IsZero())
}
