package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for establishing a PostgreSQL connection.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a database/sql pool and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS usuario (
	id        BIGSERIAL PRIMARY KEY,
	nombre    TEXT NOT NULL DEFAULT '',
	apellido  TEXT NOT NULL DEFAULT '',
	usuario   TEXT NOT NULL UNIQUE,
	clave     TEXT NOT NULL,
	dni       BIGINT NOT NULL DEFAULT 0,
	fecha     TIMESTAMPTZ NOT NULL DEFAULT now(),
	estado    TEXT NOT NULL DEFAULT 'activo',
	rol       TEXT NOT NULL DEFAULT 'user',
	domicilio TEXT NOT NULL DEFAULT '',
	activo    BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS auditoria (
	id     BIGSERIAL PRIMARY KEY,
	actor  TEXT NOT NULL,
	accion TEXT NOT NULL,
	target BIGINT NOT NULL DEFAULT 0,
	detalle TEXT NOT NULL DEFAULT '',
	fecha  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the usuario and auditoria tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
