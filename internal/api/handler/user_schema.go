package handler

import "github.com/gestioncoop/admin-usuarios/internal/core/domain"

// messageResponse is the envelope for responses that carry only a message.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type createUserRequest struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Usuario   string `json:"usuario"   validate:"required"`
	Clave     string `json:"clave"     validate:"required,min=4"`
	DNI       int64  `json:"dni"`
	Estado    string `json:"estado"`
	Rol       string `json:"rol"       validate:"required,oneof=user admin"`
	Domicilio string `json:"domicilio"`
	Activo    bool   `json:"activo"`
}

// updateUserRequest is a partial body: absent fields stay nil and are left
// untouched. newPassword is only honored for admin callers.
type updateUserRequest struct {
	Nombre      *string `json:"nombre"`
	Apellido    *string `json:"apellido"`
	DNI         *int64  `json:"dni"`
	Estado      *string `json:"estado"`
	Domicilio   *string `json:"domicilio"`
	Usuario     *string `json:"usuario"`
	Rol         *string `json:"rol"       validate:"omitempty,oneof=user admin"`
	Activo      *bool   `json:"activo"`
	NewPassword *string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=4"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}
