package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects requests whose verified token does not carry the given
// role. It must run after JWT, which populates the role context key.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, ok := c.Get(ContextKeyUserRole).(string)
			if !ok || current == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "missing role"})
			}
			if current != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
