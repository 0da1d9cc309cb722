package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newAuthApp(t *testing.T) (*fiber.App, *TokenManager) {
	t.Helper()
	store := repository.NewMemoryStore()
	store.AddClient(domain.Client{User: domain.User{ID: "c1", Role: domain.UserRoleClient}})
	store.AddSupport(domain.Support{User: domain.User{ID: "s1", Role: domain.UserRoleSupport}})

	tokens := NewTokenManager("secret", 10)
	mw := NewAuthMiddleware(tokens, store.Clients(), store.Supports())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	whoami := func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(string(p.Origin()) + ":" + p.ID())
	}
	app.Get("/client", mw.Handle, RequireClient(), whoami)
	app.Get("/support", mw.Handle, RequireSupport(), whoami)
	return app, tokens
}

func call(t *testing.T, app *fiber.App, path, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestMiddlewareResolvesPrincipals(t *testing.T) {
	app, tokens := newAuthApp(t)

	clientToken, _, err := tokens.GenerateToken("c1", domain.UserRoleClient)
	require.NoError(t, err)
	supportToken, _, err := tokens.GenerateToken("s1", domain.UserRoleSupport)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, call(t, app, "/client", "Bearer "+clientToken))
	require.Equal(t, http.StatusOK, call(t, app, "/support", "bearer "+supportToken))
	require.Equal(t, http.StatusForbidden, call(t, app, "/support", "Bearer "+clientToken))
	require.Equal(t, http.StatusForbidden, call(t, app, "/client", "Bearer "+supportToken))
}

func TestMiddlewareRejectsBadCredentials(t *testing.T) {
	app, tokens := newAuthApp(t)

	require.Equal(t, http.StatusUnauthorized, call(t, app, "/client", ""))
	require.Equal(t, http.StatusUnauthorized, call(t, app, "/client", "Basic abc"))
	require.Equal(t, http.StatusUnauthorized, call(t, app, "/client", "Bearer garbage"))

	unknown, _, err := tokens.GenerateToken("c9", domain.UserRoleClient)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, call(t, app, "/client", "Bearer "+unknown))

	noRole, _, err := tokens.GenerateToken("c1", domain.UserRole("Admin"))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, call(t, app, "/client", "Bearer "+noRole))
}
