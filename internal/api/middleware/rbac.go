package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/token"
)

// RequireRole rejects requests whose token does not carry one of the allowed
// roles. It must run after Auth.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*token.Claims)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token de acceso requerido")
			}
			if _, ok := allowed[claims.Rol]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "No tienes permisos para realizar esta acción")
			}
			return next(c)
		}
	}
}
