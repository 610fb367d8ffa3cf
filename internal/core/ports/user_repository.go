package ports

import (
	"context"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
)

// UserUpdate lists the mutable columns of a usuario row. Nil fields are left
// untouched; Clave, when set, must already be a bcrypt digest.
type UserUpdate struct {
	Nombre    *string
	Apellido  *string
	DNI       *int64
	Estado    *string
	Domicilio *string
	Usuario   *string
	Rol       *domain.Role
	Activo    *bool
	Clave     *string
}

// UserRepository is the persistence boundary of the credential store.
type UserRepository interface {
	// FindActiveByUsuario matches the login path: only rows with activo = true.
	FindActiveByUsuario(ctx context.Context, usuario string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// List returns every row ordered by nombre, apellido.
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update applies the non-nil fields of upd to the row and returns the
	// resulting row. domain.ErrUserNotFound when id does not exist.
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	// FindClaveByID returns the stored digest only, for password verification.
	FindClaveByID(ctx context.Context, id int64) (string, error)
	UpdateClave(ctx context.Context, id int64, clave string) error
}
