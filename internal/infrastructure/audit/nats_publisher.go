// Package audit publica los eventos de cambio de estado fuera del proceso.
//
// Subject por defecto: conciliacion.audit.status (NATS_SUBJECT).
//
// Todas las publicaciones son no fatales: los errores se loguean y se cuentan en
// métricas, nunca se propagan; el cambio ya quedó confirmado en Postgres.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

var (
	_ ports.AuditSink = (*NATSPublisher)(nil)
	_ Conn            = (*nats.Conn)(nil)
)

// Conn lo cumple *nats.Conn.
type Conn interface {
	Publish(subject string, data []byte) error
}

// StatusEventMessage esquema JSON publicado a NATS.
type StatusEventMessage struct {
	EventID     string  `json:"event_id"`
	InvoiceID   string  `json:"invoice_id"`
	FromStatus  string  `json:"from_status"`
	ToStatus    string  `json:"to_status"`
	PaymentDate *string `json:"payment_date,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Actor       string  `json:"actor"`
	Incomplete  bool    `json:"incomplete"`
	Timestamp   string  `json:"timestamp"`
}

// MessageFrom convierte el evento del dominio.
func MessageFrom(ev entity.StatusEvent) StatusEventMessage {
	msg := StatusEventMessage{
		EventID:    ev.ID,
		InvoiceID:  ev.InvoiceID,
		FromStatus: string(ev.FromStatus),
		ToStatus:   string(ev.ToStatus),
		Notes:      ev.Notes,
		Actor:      ev.Actor,
		Incomplete: ev.Incomplete,
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
	}
	if ev.PaymentDate != nil {
		d := ev.PaymentDate.Format("2006-01-02")
		msg.PaymentDate = &d
	}
	return msg
}

// NATSPublisher implementa ports.AuditSink sobre una conexión NATS core.
type NATSPublisher struct {
	conn    Conn
	subject string
	metrics ports.Metrics
	log     zerolog.Logger
}

// NewNATSPublisher crea el publisher. conn nil deja el publisher inactivo.
func NewNATSPublisher(conn Conn, subject string, metrics ports.Metrics, log zerolog.Logger) *NATSPublisher {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &NATSPublisher{conn: conn, subject: subject, metrics: metrics, log: log}
}

// Publish envía el evento. Nunca bloquea al caller más allá del buffer de NATS.
func (p *NATSPublisher) Publish(_ context.Context, ev entity.StatusEvent) {
	if p.conn == nil {
		return
	}
	data, err := json.Marshal(MessageFrom(ev))
	if err != nil {
		p.metrics.AuditPublishFailed()
		p.log.Warn().Err(err).Str("event_id", ev.ID).Msg("audit: no se pudo serializar el evento")
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		p.metrics.AuditPublishFailed()
		p.log.Warn().Err(err).
			Str("subject", p.subject).
			Str("invoice_id", ev.InvoiceID).
			Msg("audit: fallo al publicar evento en NATS (no fatal)")
		return
	}
	p.log.Debug().
		Str("subject", p.subject).
		Str("invoice_id", ev.InvoiceID).
		Str("event_id", ev.ID).
		Msg("audit: evento publicado")
}
