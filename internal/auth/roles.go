package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RequireClient ensures a client account is authenticated.
func RequireClient() fiber.Handler {
	return requireRole(domain.UserRoleClient, "client role required")
}

// RequireSupport ensures a support account is authenticated.
func RequireSupport() fiber.Handler {
	return requireRole(domain.UserRoleSupport, "support role required")
}

func requireRole(role domain.UserRole, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != role || principal.ID() == "" {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
