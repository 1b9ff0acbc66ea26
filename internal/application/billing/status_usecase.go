package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

// StatusUseCase cambio de estado de facturas.
//
// Orden: Transition (puro) → ApplyStatus (factura + StatusEvent en una transacción)
// → Publish al AuditSink. Si el sink falla el cambio ya quedó confirmado.
type StatusUseCase struct {
	invoices  repository.InvoiceRepository
	contracts repository.ContractRepository
	sink      ports.AuditSink
	metrics   ports.Metrics
	log       zerolog.Logger
	now       func() time.Time
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	sink ports.AuditSink,
	metrics ports.Metrics,
	log zerolog.Logger,
) *StatusUseCase {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &StatusUseCase{invoices: invoices, contracts: contracts, sink: sink, metrics: metrics, log: log, now: time.Now}
}

// ChangeStatus mueve la factura al estado pedido.
// PAID sin payment_date se acepta: la respuesta sale con Incomplete y Warning.
func (uc *StatusUseCase) ChangeStatus(ctx context.Context, actor, id string, in dto.ChangeStatusRequest) (*dto.ChangeStatusResponse, error) {
	to, err := entity.ParseInvoiceStatus(in.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidStatus, err)
	}
	paid, err := dto.ParseDate(in.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	inv, err := getInvoice(ctx, uc.invoices, id)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	ins, err := finance.Transition(inv, to, finance.TransitionOptions{
		PaymentDate: paid,
		Notes:       in.Notes,
		Actor:       actor,
		At:          now,
	})
	if err != nil {
		return nil, err
	}
	ins.Event.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()

	if err := uc.invoices.ApplyStatus(ctx, ins); err != nil {
		return nil, fmt.Errorf("aplicar estado: %w", err)
	}
	uc.sink.Publish(ctx, ins.Event)
	uc.metrics.StatusTransition(ins.Status, ins.Incomplete)

	ev := uc.log.Info()
	if ins.Incomplete {
		ev = uc.log.Warn().AnErr("warning", ins.Warning)
	}
	ev.Str("invoice_id", inv.ID).
		Str("from", string(ins.FromStatus)).
		Str("to", string(ins.Status)).
		Str("actor", actor).
		Str("event_id", ins.Event.ID).
		Msg("estado de factura actualizado")

	updated := ins.ApplyTo(*inv)
	updated.UpdatedAt = now
	contract, err := uc.contracts.GetByID(ctx, updated.ContractID)
	if err != nil {
		// el cambio ya está confirmado; se responde sin conciliación
		uc.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("obtener contrato tras cambio de estado")
	}

	out := &dto.ChangeStatusResponse{
		Invoice:    *ToInvoiceResponse(&updated, contract),
		EventID:    ins.Event.ID,
		Incomplete: ins.Incomplete,
	}
	if err != nil {
		out.Invoice.Orphan = false
	}
	if ins.Warning != nil {
		out.Warning = ins.Warning.Error()
	}
	return out, nil
}
