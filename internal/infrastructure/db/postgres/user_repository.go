package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

// projection lists every column except clave; it is the sanitized column set
// used by read paths and RETURNING clauses.
const projection = "id, nombre, apellido, usuario, dni, fecha, estado, rol, domicilio, activo"

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// UserRepository persists usuario rows through database/sql.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindActiveByUsuario(ctx context.Context, usuario string) (*domain.User, error) {
	const q = `SELECT ` + projection + `, clave FROM usuario WHERE usuario = $1 AND activo = true`
	row := r.db.QueryRowContext(ctx, q, usuario)

	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Usuario, &u.DNI, &u.Fecha,
		&u.Estado, &u.Rol, &u.Domicilio, &u.Activo, &u.Clave)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find usuario: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + projection + ` FROM usuario WHERE id = $1`
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Usuario,
		&u.DNI, &u.Fecha, &u.Estado, &u.Rol, &u.Domicilio, &u.Activo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find usuario by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + projection + ` FROM usuario ORDER BY nombre, apellido`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Usuario, &u.DNI, &u.Fecha,
			&u.Estado, &u.Rol, &u.Domicilio, &u.Activo); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO usuario (nombre, apellido, usuario, clave, dni, fecha, estado, rol, domicilio, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + projection
	created := &domain.User{}
	err := r.db.QueryRowContext(ctx, q,
		user.Nombre, user.Apellido, user.Usuario, user.Clave, user.DNI,
		user.Fecha, user.Estado, user.Rol, user.Domicilio, user.Activo,
	).Scan(&created.ID, &created.Nombre, &created.Apellido, &created.Usuario, &created.DNI,
		&created.Fecha, &created.Estado, &created.Rol, &created.Domicilio, &created.Activo)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert usuario: %w", err)
	}
	return created, nil
}

// Update builds one UPDATE statement over the non-nil fields of upd. With no
// fields set it degrades to a plain read so callers still get the 404 check
// and the current row back.
func (r *UserRepository) Update(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	assignments, args := buildAssignments(upd)
	if len(assignments) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE usuario SET %s WHERE id = $%d RETURNING %s",
		strings.Join(assignments, ", "), len(args), projection)

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Usuario,
		&u.DNI, &u.Fecha, &u.Estado, &u.Rol, &u.Domicilio, &u.Activo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update usuario: %w", err)
	}
	return u, nil
}

// buildAssignments turns the non-nil fields of upd into "col = $n" pairs with
// their positional arguments, in a fixed column order.
func buildAssignments(upd ports.UserUpdate) ([]string, []any) {
	var assignments []string
	var args []any

	add := func(col string, val any) {
		args = append(args, val)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Nombre != nil {
		add("nombre", *upd.Nombre)
	}
	if upd.Apellido != nil {
		add("apellido", *upd.Apellido)
	}
	if upd.DNI != nil {
		add("dni", *upd.DNI)
	}
	if upd.Estado != nil {
		add("estado", *upd.Estado)
	}
	if upd.Domicilio != nil {
		add("domicilio", *upd.Domicilio)
	}
	if upd.Usuario != nil {
		add("usuario", *upd.Usuario)
	}
	if upd.Rol != nil {
		add("rol", string(*upd.Rol))
	}
	if upd.Activo != nil {
		add("activo", *upd.Activo)
	}
	if upd.Clave != nil {
		add("clave", *upd.Clave)
	}
	return assignments, args
}

func (r *UserRepository) FindClaveByID(ctx context.Context, id int64) (string, error) {
	const q = `SELECT clave FROM usuario WHERE id = $1`
	var clave string
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&clave); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find clave: %w", err)
	}
	return clave, nil
}

func (r *UserRepository) UpdateClave(ctx context.Context, id int64, clave string) error {
	const q = `UPDATE usuario SET clave = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, clave, id)
	if err != nil {
		return fmt.Errorf("update clave: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update clave: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
