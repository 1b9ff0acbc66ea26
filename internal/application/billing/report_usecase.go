package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/analytics"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

// SnapshotComputer lo implementa *analytics.DashboardUseCase.
type SnapshotComputer interface {
	Compute(ctx context.Context, month entity.ReferenceMonth) (*analytics.Snapshot, finance.Summary, finance.Apportionment, error)
}

// ReportUseCase reporte mensual de conciliación en PDF.
type ReportUseCase struct {
	snapshots SnapshotComputer
	generator ports.ReportGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(snapshots SnapshotComputer, generator ports.ReportGenerator, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{snapshots: snapshots, generator: generator, log: log, now: time.Now}
}

// BuildReport arma los datos del reporte del mes (el mes es obligatorio).
func (uc *ReportUseCase) BuildReport(ctx context.Context, month entity.ReferenceMonth) (*ports.ReconciliationReport, error) {
	if month.IsZero() {
		return nil, fmt.Errorf("%w: month es requerido", domain.ErrInvalidInput)
	}
	snap, summary, apportionment, err := uc.snapshots.Compute(ctx, month)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Contract, len(snap.Contracts))
	for _, c := range snap.Contracts {
		byID[c.ID] = c
	}
	rows := make([]ports.ReportRow, 0, len(snap.Invoices))
	for _, inv := range snap.Invoices {
		row := ports.ReportRow{Invoice: inv}
		c := byID[inv.ContractID]
		if c != nil {
			row.ContractName = c.Name
		}
		rec, err := finance.Reconcile(inv, c)
		switch {
		case err == nil:
			row.Reconciliation = &rec
		case errors.Is(err, domain.ErrMissingContractReference):
			row.Orphan = true
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ContractName < rows[j].ContractName })

	return &ports.ReconciliationReport{
		ReferenceMonth: month,
		GeneratedAt:    uc.now(),
		Summary:        summary,
		Rows:           rows,
		Apportionment:  apportionment,
	}, nil
}

// Reconciliation genera el PDF del mes.
func (uc *ReportUseCase) Reconciliation(ctx context.Context, month entity.ReferenceMonth) ([]byte, error) {
	report, err := uc.BuildReport(ctx, month)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateReconciliationReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", month, err)
	}
	uc.log.Info().Str("month", month.String()).Int("invoices", len(report.Rows)).Int("bytes", len(pdf)).Msg("reporte generado")
	return pdf, nil
}
