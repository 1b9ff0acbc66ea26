package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

var (
	_ ports.AuditSink = LogSink{}
	_ ports.AuditSink = MultiSink{}
)

// LogSink escribe cada evento en el log. Se usa cuando no hay NATS_URL.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Publish(_ context.Context, ev entity.StatusEvent) {
	e := s.Log.Info()
	if ev.Incomplete {
		e = s.Log.Warn()
	}
	e.Str("event_id", ev.ID).
		Str("invoice_id", ev.InvoiceID).
		Str("from", string(ev.FromStatus)).
		Str("to", string(ev.ToStatus)).
		Str("actor", ev.Actor).
		Bool("incomplete", ev.Incomplete).
		Msg("audit: cambio de estado")
}

// MultiSink reenvía a varios sinks en orden.
type MultiSink []ports.AuditSink

func (m MultiSink) Publish(ctx context.Context, ev entity.StatusEvent) {
	for _, s := range m {
		s.Publish(ctx, ev)
	}
}
