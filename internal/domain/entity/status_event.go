package entity

import "time"

// StatusEvent hecho de cambio de estado de una factura, consumido por el log de auditoría.
type StatusEvent struct {
	ID          string // ULID, asignado al publicar
	InvoiceID   string
	FromStatus  InvoiceStatus
	ToStatus    InvoiceStatus
	PaymentDate *time.Time
	Notes       *string
	Actor       string
	Timestamp   time.Time
	Incomplete  bool
}
