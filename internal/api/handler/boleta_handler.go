package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BoletaHandler is the placeholder for the boletas module. Routes exist so
// the client has a stable path to target, but every call answers 501 until
// the module is built.
type BoletaHandler struct{}

func NewBoletaHandler() *BoletaHandler {
	return &BoletaHandler{}
}

func (h *BoletaHandler) NotImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, messageResponse{
		Message: "Módulo de boletas no implementado",
	})
}
