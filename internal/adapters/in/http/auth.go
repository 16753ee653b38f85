package http

import (
	"net/http"

	"freightline/internal/core/ports"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// actorContextKey is where the auth middleware stores the resolved actor.
const actorContextKey = "actor"

// AuthMiddleware validates the bearer token and resolves the calling actor.
// The resolved ports.Actor is stored in the request context for handlers.
func AuthMiddleware(identity ports.IdentityProvider) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: actorContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return identity.ResolveActor(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, errorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Missing or invalid credentials",
			})
		},
	})
}

// actorFromContext returns the actor resolved by AuthMiddleware.
func actorFromContext(c echo.Context) (ports.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(ports.Actor)
	return actor, ok
}
