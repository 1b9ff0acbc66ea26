package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// AuditUseCase consultas del log de auditoría.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// historyTargets objetivos visibles en el historial para todos los roles.
var historyTargets = []string{
	entity.AuditTargetContract,
	entity.AuditTargetInvoice,
	entity.AuditTargetTelephonyLine,
}

// Recent últimas entradas del log (más recientes primero).
func (uc *AuditUseCase) Recent(ctx context.Context, limit int) (dto.ListResponse[dto.AuditEntryResponse], error) {
	entries, err := uc.repo.ListRecent(ctx, clampAuditLimit(limit))
	if err != nil {
		return dto.ListResponse[dto.AuditEntryResponse]{}, fmt.Errorf("log de auditoría: %w", err)
	}
	return toAuditList(entries), nil
}

// History cambios sobre contratos, facturas y líneas telefónicas, más recientes primero.
func (uc *AuditUseCase) History(ctx context.Context, limit int) (dto.ListResponse[dto.AuditEntryResponse], error) {
	entries, err := uc.repo.ListByTargets(ctx, historyTargets, clampAuditLimit(limit))
	if err != nil {
		return dto.ListResponse[dto.AuditEntryResponse]{}, fmt.Errorf("historial: %w", err)
	}
	return toAuditList(entries), nil
}

func clampAuditLimit(limit int) int {
	if limit <= 0 {
		return defaultAuditLimit
	}
	if limit > maxAuditLimit {
		return maxAuditLimit
	}
	return limit
}

func toAuditList(entries []*entity.AuditEntry) dto.ListResponse[dto.AuditEntryResponse] {
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.AuditEntryResponse{
			ID:        e.ID,
			Actor:     e.Actor,
			Action:    e.Action,
			Target:    e.Target,
			TargetID:  e.TargetID,
			Details:   e.Details,
			Timestamp: e.Timestamp,
		})
	}
	return dto.NewList(items)
}

// InvoiceHistory historial de estados de una factura.
func (uc *AuditUseCase) InvoiceHistory(ctx context.Context, invoiceID string) (dto.ListResponse[dto.StatusEventResponse], error) {
	events, err := uc.repo.ListStatusEvents(ctx, invoiceID)
	if err != nil {
		return dto.ListResponse[dto.StatusEventResponse]{}, fmt.Errorf("historial de factura: %w", err)
	}
	items := make([]dto.StatusEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, ToStatusEventResponse(ev))
	}
	return dto.NewList(items), nil
}

// ToStatusEventResponse convierte un StatusEvent.
func ToStatusEventResponse(ev *entity.StatusEvent) dto.StatusEventResponse {
	return dto.StatusEventResponse{
		ID:          ev.ID,
		InvoiceID:   ev.InvoiceID,
		FromStatus:  string(ev.FromStatus),
		ToStatus:    string(ev.ToStatus),
		PaymentDate: dto.FormatDate(ev.PaymentDate),
		Notes:       ev.Notes,
		Actor:       ev.Actor,
		Timestamp:   ev.Timestamp,
		Incomplete:  ev.Incomplete,
	}
}
