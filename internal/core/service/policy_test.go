package service

import (
	"testing"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

func TestFieldAllowed(t *testing.T) {
	baseline := []string{"nombre", "apellido", "dni", "estado", "domicilio"}
	adminOnly := []string{"usuario", "rol", "activo", "clave"}

	for _, f := range baseline {
		if !fieldAllowed(domain.RoleUser, f) {
			t.Fatalf("baseline field %q should be allowed for user role", f)
		}
	}
	for _, f := range adminOnly {
		if fieldAllowed(domain.RoleUser, f) {
			t.Fatalf("admin-only field %q allowed for user role", f)
		}
		if !fieldAllowed(domain.RoleAdmin, f) {
			t.Fatalf("field %q should be allowed for admin role", f)
		}
	}

	if fieldAllowed(domain.RoleAdmin, "id") {
		t.Fatalf("unknown field must never be mutable")
	}
}

func TestApplyPolicy_DropsAdminFieldsForUserRole(t *testing.T) {
	input := ports.UpdateUserInput{
		Nombre:  strptr("Ana"),
		Usuario: strptr("otra"),
		Rol:     rolptr(domain.RoleAdmin),
		Activo:  boolptr(false),
	}

	upd := applyPolicy(domain.RoleUser, input)
	if upd.Nombre == nil || *upd.Nombre != "Ana" {
		t.Fatalf("baseline field dropped: %+v", upd)
	}
	if upd.Usuario != nil || upd.Rol != nil || upd.Activo != nil {
		t.Fatalf("admin-only fields leaked through user policy: %+v", upd)
	}

	upd = applyPolicy(domain.RoleAdmin, input)
	if upd.Usuario == nil || upd.Rol == nil || upd.Activo == nil {
		t.Fatalf("admin policy dropped allowed fields: %+v", upd)
	}
}
