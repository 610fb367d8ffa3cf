package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

var userColumns = []string{"id", "nombre", "apellido", "usuario", "dni", "fecha", "estado", "rol", "domicilio", "activo"}

func userRow(id int64, usuario string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(id, "Ana", "García", usuario, int64(30123456), time.Now().UTC(), "activo", "user", "Calle 1", true)
}

func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewUserRepository(db), mock, func() { db.Close() }
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindActiveByUsuario(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows(append(userColumns, "clave")).
		AddRow(int64(1), "Ana", "García", "ana", int64(30123456), time.Now().UTC(),
			"activo", "user", "Calle 1", true, "$2a$10$digest")

	mock.ExpectQuery(`SELECT (.+), clave FROM usuario WHERE usuario = \$1 AND activo = true`).
		WithArgs("ana").
		WillReturnRows(rows)

	u, err := repo.FindActiveByUsuario(context.Background(), "ana")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.ID != 1 || u.Usuario != "ana" || u.Clave != "$2a$10$digest" {
		t.Fatalf("unexpected user: %+v", u)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_FindActiveByUsuario_NotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT (.+) FROM usuario WHERE usuario = \$1 AND activo = true`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(append(userColumns, "clave")))

	if _, err := repo.FindActiveByUsuario(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_List_OrderedByName(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(2), "Ana", "García", "ana", int64(1), time.Now().UTC(), "activo", "user", "", true).
		AddRow(int64(1), "Benito", "Pérez", "benito", int64(2), time.Now().UTC(), "activo", "admin", "", true)

	mock.ExpectQuery(`SELECT (.+) FROM usuario ORDER BY nombre, apellido`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Nombre != "Ana" || users[1].Nombre != "Benito" {
		t.Fatalf("unexpected users: %+v", users)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO usuario (.+) RETURNING`).
		WithArgs("Ana", "García", "ana", "$2a$10$digest", int64(30123456), now, "activo", "user", "Calle 1", true).
		WillReturnRows(userRow(5, "ana"))

	created, err := repo.Create(context.Background(), &domain.User{
		Nombre: "Ana", Apellido: "García", Usuario: "ana", Clave: "$2a$10$digest",
		DNI: 30123456, Fecha: now, Estado: "activo", Rol: domain.RoleUser,
		Domicilio: "Calle 1", Activo: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("unexpected id: %d", created.ID)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Create_DuplicateUsuario(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO usuario`).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	if _, err := repo.Create(context.Background(), &domain.User{Usuario: "ana"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	expectationsMet(t, mock)
}

// The dynamic builder must emit exactly the supplied columns, in order, with
// the id as the last positional argument.
func TestUserRepository_Update_PartialFields(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	nombre := "Ana María"
	domicilio := "Calle 2"
	wantSQL := regexp.QuoteMeta("UPDATE usuario SET nombre = $1, domicilio = $2 WHERE id = $3 RETURNING " + projection)

	mock.ExpectQuery(wantSQL).
		WithArgs("Ana María", "Calle 2", int64(5)).
		WillReturnRows(userRow(5, "ana"))

	u, err := repo.Update(context.Background(), 5, ports.UserUpdate{Nombre: &nombre, Domicilio: &domicilio})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.ID != 5 {
		t.Fatalf("unexpected row: %+v", u)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Update_AdminFieldSetWithClave(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	usuario := "ana.g"
	rol := domain.RoleAdmin
	activo := false
	clave := "$2a$10$newdigest"
	wantSQL := regexp.QuoteMeta("UPDATE usuario SET usuario = $1, rol = $2, activo = $3, clave = $4 WHERE id = $5 RETURNING " + projection)

	mock.ExpectQuery(wantSQL).
		WithArgs("ana.g", "admin", false, clave, int64(9)).
		WillReturnRows(userRow(9, "ana.g"))

	if _, err := repo.Update(context.Background(), 9, ports.UserUpdate{
		Usuario: &usuario, Rol: &rol, Activo: &activo, Clave: &clave,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Update_NoFieldsFallsBackToRead(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT (.+) FROM usuario WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(userRow(5, "ana"))

	u, err := repo.Update(context.Background(), 5, ports.UserUpdate{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Usuario != "ana" {
		t.Fatalf("unexpected row: %+v", u)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	nombre := "X"
	mock.ExpectQuery(`UPDATE usuario SET`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	if _, err := repo.Update(context.Background(), 42, ports.UserUpdate{Nombre: &nombre}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_UpdateClave(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE usuario SET clave = \$1 WHERE id = \$2`).
		WithArgs("$2a$10$digest", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateClave(context.Background(), 5, "$2a$10$digest"); err != nil {
		t.Fatalf("update clave: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_UpdateClave_NotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE usuario SET clave = \$1 WHERE id = \$2`).
		WithArgs("x", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateClave(context.Background(), 42, "x"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_FindClaveByID(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT clave FROM usuario WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"clave"}).AddRow("$2a$10$digest"))

	clave, err := repo.FindClaveByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("find clave: %v", err)
	}
	if clave != "$2a$10$digest" {
		t.Fatalf("unexpected clave: %q", clave)
	}
	expectationsMet(t, mock)
}
