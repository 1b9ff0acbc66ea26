package ports

import (
	"context"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// AuditSink recibe los StatusEvent ya persistidos para difundirlos (mensajería, log).
// Es fire-and-forget: un fallo del sink no revierte el cambio de estado; el
// adaptador lo registra y sigue.
type AuditSink interface {
	Publish(ctx context.Context, event entity.StatusEvent)
}
