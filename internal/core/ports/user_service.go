package ports

import (
	"context"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
)

// CreateUserInput carries the fields of a new usuario row plus the initial
// plaintext secret, which the service hashes before insert.
type CreateUserInput struct {
	Nombre    string
	Apellido  string
	Usuario   string
	Clave     string
	DNI       int64
	Estado    string
	Rol       domain.Role
	Domicilio string
	Activo    bool
}

// UpdateUserInput is the partial field set accepted by the update endpoint.
// Nil means "not supplied". NewPassword is honored for admin callers only.
type UpdateUserInput struct {
	Nombre      *string
	Apellido    *string
	DNI         *int64
	Estado      *string
	Domicilio   *string
	Usuario     *string
	Rol         *domain.Role
	Activo      *bool
	NewPassword *string
}

type UserService interface {
	List(ctx context.Context, actor Actor) ([]domain.User, error)
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error)
	// Update mutates the target row under the role policy: non-admin actors
	// may only target themselves and their admin-only fields are discarded.
	Update(ctx context.Context, actor Actor, id int64, input UpdateUserInput) (*domain.User, error)
	// ChangePassword verifies currentPassword against the stored digest unless
	// the actor is an admin, then hashes and stores newPassword.
	ChangePassword(ctx context.Context, actor Actor, id int64, currentPassword, newPassword string) error
}
