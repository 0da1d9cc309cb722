package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestToDomainErrorMapsKinds(t *testing.T) {
	cases := map[*domain.Error]int{
		domain.ErrClientNotFound:            http.StatusNotFound,
		domain.ErrSupportNotFound:           http.StatusNotFound,
		domain.ErrTicketNotFound:            http.StatusNotFound,
		domain.ErrTicketAlreadyHasSupport:   http.StatusConflict,
		domain.ErrTicketAlreadyCancelled:    http.StatusConflict,
		domain.ErrTicketAlreadyFinished:     http.StatusConflict,
		domain.ErrTicketCancelled:           http.StatusConflict,
		domain.ErrTicketFinished:            http.StatusConflict,
		domain.ErrConcurrentUpdate:          http.StatusConflict,
		domain.ErrSupportCannotCreateTicket: http.StatusForbidden,
		domain.ErrInvalidSupport:            http.StatusForbidden,
		domain.ErrInvalidComment:            http.StatusBadRequest,
	}
	for sentinel, status := range cases {
		wrapped := fmt.Errorf("service: %w", sentinel)
		got := ToDomainError(wrapped)
		require.Equal(t, status, got.HTTPStatus, sentinel.Kind)
		require.Equal(t, string(sentinel.Kind), got.Code)
		require.Equal(t, sentinel.Message, got.Message)
	}
}

func TestToDomainErrorKeepsCustomMessage(t *testing.T) {
	got := ToDomainError(domain.ErrInvalidComment.WithMessage("client id is required"))
	require.Equal(t, "client id is required", got.Message)
	require.Equal(t, http.StatusBadRequest, got.HTTPStatus)
}

func TestToDomainErrorFallbacks(t *testing.T) {
	require.Nil(t, ToDomainError(nil))

	fe := ToDomainError(fiber.NewError(http.StatusForbidden, "support role required"))
	require.Equal(t, "FORBIDDEN", fe.Code)
	require.Equal(t, http.StatusForbidden, fe.HTTPStatus)

	nf := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	require.Equal(t, http.StatusNotFound, nf.HTTPStatus)

	boom := errors.New("boom")
	internal := ToDomainError(boom)
	require.Equal(t, "INTERNAL_ERROR", internal.Code)
	require.ErrorIs(t, internal, boom)

	existing := NewValidationError("bad", map[string]any{"field": "title"})
	require.Same(t, existing, ToDomainError(existing))
	require.Equal(t, http.StatusInternalServerError, StatusForKind(domain.ErrorKind("UNKNOWN")))
}
