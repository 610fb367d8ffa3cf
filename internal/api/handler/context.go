package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioncoop/admin-usuarios/internal/api/middleware"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
	"github.com/gestioncoop/admin-usuarios/internal/token"
)

// ctxActor extracts the claims injected by the Auth middleware and converts
// them into the actor passed to the services. Absent claims mean the route
// was wired without the middleware; answer 401 rather than proceed with a
// zero identity.
func ctxActor(c echo.Context) (ports.Actor, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*token.Claims)
	if claims == nil {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Token de acceso requerido")
	}
	return ports.Actor{ID: claims.ID, Usuario: claims.Usuario, Rol: claims.Rol}, nil
}
