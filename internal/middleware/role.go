package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated user holds one of the given
// roles. Each portal group mounts this with exactly one role, so a
// passenger token can never reach driver or admin endpoints. The denial is
// a generic message: the response never reveals which roles would have been
// accepted. It assumes JWTAuth already stored the role in context.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied for this portal"})
			}
			return next(c)
		}
	}
}
