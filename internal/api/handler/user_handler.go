package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns every usuario row, sanitized, ordered by name. Admin only.
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Create inserts a new usuario row with a hashed initial secret. Admin only.
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Usuario:   req.Usuario,
		Clave:     req.Clave,
		DNI:       req.DNI,
		Estado:    req.Estado,
		Rol:       domain.Role(req.Rol),
		Domicilio: req.Domicilio,
		Activo:    req.Activo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{
		Message: "Usuario creado correctamente",
		User:    user,
	})
}

// Update applies a partial field set to the target row under the role policy.
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateUserInput{
		Nombre:      req.Nombre,
		Apellido:    req.Apellido,
		DNI:         req.DNI,
		Estado:      req.Estado,
		Domicilio:   req.Domicilio,
		Usuario:     req.Usuario,
		Activo:      req.Activo,
		NewPassword: req.NewPassword,
	}
	if req.Rol != nil {
		rol := domain.Role(*req.Rol)
		input.Rol = &rol
	}

	user, err := h.userService.Update(c.Request().Context(), actor, id, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "Usuario actualizado correctamente",
		User:    user,
	})
}

// ChangePassword verifies the current secret (non-admin callers only) and
// stores the hash of the new one.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), actor, id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Contraseña actualizada correctamente"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Identificador inválido")
	}
	return id, nil
}
