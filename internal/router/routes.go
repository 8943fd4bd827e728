package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corebitlabs/auth-api/internal/auth"
	"github.com/corebitlabs/auth-api/internal/config"
	"github.com/corebitlabs/auth-api/internal/handler"
	middlewarepkg "github.com/corebitlabs/auth-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth  *handler.AuthHandler
	Users *handler.UserAdminHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, tokens middlewarepkg.TokenStore, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login, middlewarepkg.LoginRateLimiter(cfg.RateLimitLogin))

	secured := e.Group("", middlewarepkg.JWT(jwtManager, tokens))
	secured.GET("/auth/me", handlers.Auth.Me)
	secured.POST("/auth/logout", handlers.Auth.Logout)

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
