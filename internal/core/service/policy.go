package service

import (
	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

// fieldPolicy maps each mutable field of a usuario row to the minimum role
// allowed to change it. Checked once per update instead of branching per
// field at the call sites.
var fieldPolicy = map[string]domain.Role{
	"nombre":    domain.RoleUser,
	"apellido":  domain.RoleUser,
	"dni":       domain.RoleUser,
	"estado":    domain.RoleUser,
	"domicilio": domain.RoleUser,
	"usuario":   domain.RoleAdmin,
	"rol":       domain.RoleAdmin,
	"activo":    domain.RoleAdmin,
	"clave":     domain.RoleAdmin,
}

func fieldAllowed(rol domain.Role, field string) bool {
	min, ok := fieldPolicy[field]
	if !ok {
		return false
	}
	return min == domain.RoleUser || rol == domain.RoleAdmin
}

// applyPolicy converts the request-level input into a repository update,
// silently discarding fields the actor's role may not touch. Self-service
// callers can therefore never escalate rol, flip activo or rename usuario,
// no matter what the request body carries.
func applyPolicy(rol domain.Role, input ports.UpdateUserInput) ports.UserUpdate {
	upd := ports.UserUpdate{}
	if input.Nombre != nil && fieldAllowed(rol, "nombre") {
		upd.Nombre = input.Nombre
	}
	if input.Apellido != nil && fieldAllowed(rol, "apellido") {
		upd.Apellido = input.Apellido
	}
	if input.DNI != nil && fieldAllowed(rol, "dni") {
		upd.DNI = input.DNI
	}
	if input.Estado != nil && fieldAllowed(rol, "estado") {
		upd.Estado = input.Estado
	}
	if input.Domicilio != nil && fieldAllowed(rol, "domicilio") {
		upd.Domicilio = input.Domicilio
	}
	if input.Usuario != nil && fieldAllowed(rol, "usuario") {
		upd.Usuario = input.Usuario
	}
	if input.Rol != nil && fieldAllowed(rol, "rol") {
		upd.Rol = input.Rol
	}
	if input.Activo != nil && fieldAllowed(rol, "activo") {
		upd.Activo = input.Activo
	}
	return upd
}
