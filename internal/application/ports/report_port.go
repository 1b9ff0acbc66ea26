package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

// ReportRow una factura del período con su conciliación.
// Reconciliation es nil para huérfanas y registros mal formados.
type ReportRow struct {
	ContractName   string
	Invoice        *entity.Invoice
	Reconciliation *finance.Reconciliation
	Orphan         bool
}

// ReconciliationReport datos del reporte mensual de conciliación.
type ReconciliationReport struct {
	ReferenceMonth entity.ReferenceMonth
	GeneratedAt    time.Time
	Summary        finance.Summary
	Rows           []ReportRow
	Apportionment  finance.Apportionment
}

// ReportGenerator genera la representación PDF del reporte.
type ReportGenerator interface {
	GenerateReconciliationReport(ctx context.Context, report *ReconciliationReport) ([]byte, error)
}
