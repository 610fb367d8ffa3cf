package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var ErrMissingCredentials = errors.New("usuario and clave are required")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrPasswordMismatch = errors.New("current password does not match")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User models one row of the usuario table. Clave holds the bcrypt digest and
// is never serialized; every response carries the sanitized projection only.
type User struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Usuario   string    `json:"usuario"`
	Clave     string    `json:"-"`
	DNI       int64     `json:"dni"`
	Fecha     time.Time `json:"fecha"`
	Estado    string    `json:"estado"`
	Rol       Role      `json:"rol"`
	Domicilio string    `json:"domicilio"`
	Activo    bool      `json:"activo"`
}
