package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// RequireUser ensures a ticket owner is authenticated.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewForbidden("user required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures an administrator of any role is authenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Admin == nil {
			return apperrors.NewForbidden("administrator required")
		}
		return c.Next()
	}
}

// RequireSuperAdmin ensures the caller holds the Administrator role.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsSuperAdmin() {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
