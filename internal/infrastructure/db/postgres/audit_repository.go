package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
)

// AuditRepository persists the auditoria trail.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	const q = `INSERT INTO auditoria (actor, accion, target, detalle) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, q, entry.Actor, entry.Action, entry.Target, entry.Detail); err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT id, actor, accion, target, detalle, fecha FROM auditoria ORDER BY fecha DESC, id DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Target, &e.Detail, &e.Fecha); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
