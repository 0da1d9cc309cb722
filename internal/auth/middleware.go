package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Exactly one of Client and
// Support is set, matching Role.
type Principal struct {
	Role    domain.UserRole
	Client  *domain.Client
	Support *domain.Support
}

// ID returns the account id of the caller.
func (p *Principal) ID() string {
	switch {
	case p == nil:
		return ""
	case p.Client != nil:
		return p.Client.ID
	case p.Support != nil:
		return p.Support.ID
	default:
		return ""
	}
}

// Origin maps the caller's role to a comment origin.
func (p *Principal) Origin() domain.Origin {
	if p != nil && p.Role == domain.UserRoleSupport {
		return domain.FromSupport
	}
	return domain.FromClient
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	clients  repository.ClientRepository
	supports repository.SupportRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, clients repository.ClientRepository, supports repository.SupportRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, clients: clients, supports: supports}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Role: claims.Role}

	switch claims.Role {
	case domain.UserRoleClient:
		client, err := m.clients.GetByID(c.UserContext(), claims.SubjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if client == nil {
			return apperrors.NewUnauthorized("client not found")
		}
		principal.Client = client
	case domain.UserRoleSupport:
		support, err := m.supports.GetByID(c.UserContext(), claims.SubjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if support == nil {
			return apperrors.NewUnauthorized("support not found")
		}
		principal.Support = support
	default:
		return apperrors.NewUnauthorized("unknown role")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
