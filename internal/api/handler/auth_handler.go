package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates usuario/clave and returns a bearer token plus the
// sanitized user projection.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}

	signed, user, err := h.authService.Login(c.Request().Context(), req.Usuario, req.Clave)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login exitoso",
		Token:   signed,
		User:    user,
	})
}

// Profile returns the sanitized row behind the caller's token.
func (h *AuthHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
