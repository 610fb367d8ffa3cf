package ports

import (
	"context"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
)

// AuditRecorder accepts an entry for asynchronous persistence. Record never
// blocks the caller beyond queue backpressure and never returns an error; a
// failed insert is logged by the recorder itself.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists and queries the auditoria trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
