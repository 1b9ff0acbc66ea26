package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

// InvoiceFilter filtros de listado. Campos vacíos no filtran.
// Las facturas desactivadas solo aparecen con IncludeCanceled.
type InvoiceFilter struct {
	ContractID      string
	ReferenceMonth  entity.ReferenceMonth
	Status          entity.InvoiceStatus
	IncludeCanceled bool
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// SetCanceledAt desactiva (at != nil) o reactiva (at == nil) una factura.
	SetCanceledAt(ctx context.Context, id string, at *time.Time) error
	Delete(ctx context.Context, id string) error
	// ApplyStatus aplica la instrucción del flujo de estados y persiste su StatusEvent
	// en una sola transacción. Devuelve domain.ErrNotFound si la factura no existe.
	ApplyStatus(ctx context.Context, ins finance.InvoiceUpdateInstruction) error
}
