package ports

import (
	"context"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
)

// Actor is the identity resolved from a bearer token, trusted without a store
// round-trip for the lifetime of the token.
type Actor struct {
	ID      int64
	Usuario string
	Rol     domain.Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Rol == domain.RoleAdmin
}

type AuthService interface {
	// Login verifies usuario/clave against the credential store and returns a
	// signed token plus the matched row. Unknown usuario, inactive row and
	// wrong clave all surface as domain.ErrInvalidCredentials.
	Login(ctx context.Context, usuario, clave string) (string, *domain.User, error)
	// Profile loads the row behind the actor's token.
	Profile(ctx context.Context, actor Actor) (*domain.User, error)
}

// LoginThrottle counts failed login attempts per usuario and reports when a
// usuario has exceeded the allowed number inside the window.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, usuario string) (bool, error)
	RecordFailure(ctx context.Context, usuario string) error
	Reset(ctx context.Context, usuario string) error
}
