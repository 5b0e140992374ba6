package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// RequireAdmin ensures an ADMIN principal is attached to the request.
// Both anonymous and non-admin callers get 401, so the API surface does not
// reveal whether a session exists.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin() {
			return apperrors.NewUnauthorized("admin access required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures any principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
