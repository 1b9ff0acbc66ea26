package repository

import (
	"context"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// AuditRepository log de auditoría (append-only).
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	// ListRecent devuelve las últimas entradas, más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error)
	// ListByTargets como ListRecent, solo para los objetivos indicados.
	ListByTargets(ctx context.Context, targets []string, limit int) ([]*entity.AuditEntry, error)
	// ListStatusEvents historial de estados de una factura en orden cronológico.
	ListStatusEvents(ctx context.Context, invoiceID string) ([]*entity.StatusEvent, error)
}
