package domain

import "time"

// Audit actions recorded for every mutating operation.
const (
	AuditLogin           = "login"
	AuditUserCreated     = "user_created"
	AuditUserUpdated     = "user_updated"
	AuditPasswordChanged = "password_changed"
)

// AuditEntry is one row of the auditoria trail. Actor is the usuario of the
// caller, Target the id of the affected row (0 when not applicable).
type AuditEntry struct {
	ID     int64     `json:"id"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Target int64     `json:"target"`
	Detail string    `json:"detail,omitempty"`
	Fecha  time.Time `json:"fecha"`
}
