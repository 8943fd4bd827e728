package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authpkg "github.com/corebitlabs/auth-api/internal/auth"
	"github.com/corebitlabs/auth-api/internal/entity"
)

// TokenStore looks up the persisted token for a user. Satisfied by the users
// repository.
type TokenStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// JWT validates bearer tokens and stores user metadata in the request
// context. Beyond signature verification, the presented token must match the
// persisted one: a newer login revokes every token issued before it.
func JWT(manager *authpkg.JWTManager, store TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if manager == nil || store == nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}

			claims, err := manager.ParseToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			user, err := store.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			if user.AccessToken == nil || *user.AccessToken != parts[1] {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token revoked"})
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserRole, claims.Role)

			return next(c)
		}
	}
}
