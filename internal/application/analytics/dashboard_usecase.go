// Package analytics contiene los casos de uso del dashboard financiero:
// pronóstico mensual, realizado, pendiente y prorrateo de telefonía.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

// Snapshot colecciones leídas del almacenamiento para un cálculo.
// Los contratos siempre son todos (cancelados incluidos) para resolver referencias.
type Snapshot struct {
	Month     entity.ReferenceMonth // cero = sin filtro de mes
	Contracts []*entity.Contract
	Invoices  []*entity.Invoice
	Lines     []*entity.TelephonyLine
}

// DashboardUseCase genera el resumen financiero. Recalcula todo en cada llamada;
// el refresco periódico lo dispara el cliente o `conciliador vigilar`.
type DashboardUseCase struct {
	contracts repository.ContractRepository
	invoices  repository.InvoiceRepository
	lines     repository.TelephonyRepository
	metrics   ports.Metrics
	log       zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	contracts repository.ContractRepository,
	invoices repository.InvoiceRepository,
	lines repository.TelephonyRepository,
	metrics ports.Metrics,
	log zerolog.Logger,
) *DashboardUseCase {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &DashboardUseCase{contracts: contracts, invoices: invoices, lines: lines, metrics: metrics, log: log}
}

// LoadSnapshot lee contratos, facturas y líneas del mes en paralelo.
func (uc *DashboardUseCase) LoadSnapshot(ctx context.Context, month entity.ReferenceMonth) (*Snapshot, error) {
	type contractsResult struct {
		list []*entity.Contract
		err  error
	}
	type invoicesResult struct {
		list []*entity.Invoice
		err  error
	}
	type linesResult struct {
		list []*entity.TelephonyLine
		err  error
	}

	contractsCh := make(chan contractsResult, 1)
	invoicesCh := make(chan invoicesResult, 1)
	linesCh := make(chan linesResult, 1)

	go func() {
		list, err := uc.contracts.List(ctx)
		contractsCh <- contractsResult{list, err}
	}()
	go func() {
		list, err := uc.invoices.List(ctx, repository.InvoiceFilter{ReferenceMonth: month})
		invoicesCh <- invoicesResult{list, err}
	}()
	go func() {
		list, err := uc.lines.List(ctx, repository.TelephonyFilter{ReferenceMonth: month})
		linesCh <- linesResult{list, err}
	}()

	contracts := <-contractsCh
	invoices := <-invoicesCh
	lines := <-linesCh

	if contracts.err != nil {
		return nil, fmt.Errorf("dashboard: contratos: %w", contracts.err)
	}
	if invoices.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", invoices.err)
	}
	if lines.err != nil {
		return nil, fmt.Errorf("dashboard: líneas: %w", lines.err)
	}
	return &Snapshot{Month: month, Contracts: contracts.list, Invoices: invoices.list, Lines: lines.list}, nil
}

// Compute lee el snapshot y ejecuta el resumen y el prorrateo.
func (uc *DashboardUseCase) Compute(ctx context.Context, month entity.ReferenceMonth) (*Snapshot, finance.Summary, finance.Apportionment, error) {
	snap, err := uc.LoadSnapshot(ctx, month)
	if err != nil {
		return nil, finance.Summary{}, finance.Apportionment{}, err
	}
	summary := finance.Summarize(snap.Contracts, snap.Invoices)
	apportionment := finance.ApportionByBranch(snap.Lines)

	uc.metrics.SummaryComputed(summary)
	uc.metrics.ApportionmentComputed(apportionment)
	if n := len(summary.Issues) + len(apportionment.Issues); n > 0 || len(summary.Orphans) > 0 {
		uc.log.Warn().
			Str("month", month.String()).
			Int("issues", n).
			Int("orphans", len(summary.Orphans)).
			Msg("resumen con registros excluidos")
	}
	return snap, summary, apportionment, nil
}

// GetSummary construye el FinancialSummaryDTO. month cero = todas las facturas.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, month entity.ReferenceMonth) (*dto.FinancialSummaryDTO, error) {
	_, s, a, err := uc.Compute(ctx, month)
	if err != nil {
		return nil, err
	}
	label := monthLabel(time.Now())
	if !month.IsZero() {
		label = monthLabel(time.Date(month.Year, month.Month, 1, 0, 0, 0, 0, time.UTC))
	}
	return ToSummaryDTO(s, a, month, label), nil
}

// ToSummaryDTO redondea a 2 decimales para presentación.
func ToSummaryDTO(s finance.Summary, a finance.Apportionment, month entity.ReferenceMonth, label string) *dto.FinancialSummaryDTO {
	orphans := make([]dto.OrphanInvoiceDTO, 0, len(s.Orphans))
	for _, o := range s.Orphans {
		orphans = append(orphans, dto.OrphanInvoiceDTO{
			InvoiceID:   o.InvoiceID,
			ContractID:  o.ContractID,
			Status:      string(o.Status),
			FinalAmount: o.FinalAmount.Round(2),
		})
	}
	issues := append(dto.IssuesFrom(s.Issues), dto.IssuesFrom(a.Issues)...)
	return &dto.FinancialSummaryDTO{
		ReferenceMonth:   month.String(),
		DateLabel:        label,
		ForecastMonthly:  s.ForecastMonthly.Round(2),
		RealizedTotal:    s.RealizedTotal.Round(2),
		PendingTotal:     s.PendingTotal.Round(2),
		ReconciledTotal:  s.ReconciledTotal().Round(2),
		TelephonyTotal:   a.Total.Round(2),
		ContractsInForce: s.ContractsInForce,
		PaidCount:        s.PaidCount,
		PendingCount:     s.PendingCount,
		DivergentCount:   s.DivergentCount,
		Orphans:          orphans,
		Issues:           issues,
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
