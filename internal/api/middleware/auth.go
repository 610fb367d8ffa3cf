package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestioncoop/admin-usuarios/internal/token"
)

// ClaimsKey is the echo context key under which Auth stores the validated
// *token.Claims. It is the only producer of that value; handlers read it
// through handler.ctxActor.
const ClaimsKey = "auth_claims"

// Auth validates the bearer token and injects its claims into the context.
// Missing header, malformed header and invalid token all answer 401 without
// distinguishing the cause.
func Auth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token de acceso requerido")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token de acceso requerido")
			}

			claims, err := issuer.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token inválido o expirado")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
