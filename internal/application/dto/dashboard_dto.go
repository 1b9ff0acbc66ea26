package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

// IssueDTO registro excluido o marcado durante una agregación.
type IssueDTO struct {
	Kind     string `json:"kind"`
	Record   string `json:"record"`
	RecordID string `json:"record_id"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// IssueFrom convierte un RecordIssue del motor.
func IssueFrom(is finance.RecordIssue) IssueDTO {
	out := IssueDTO{Kind: string(is.Kind), Record: is.Record, RecordID: is.RecordID, Field: is.Field}
	if is.Err != nil {
		out.Message = is.Err.Error()
	}
	return out
}

// IssuesFrom convierte la lista; nunca devuelve nil.
func IssuesFrom(issues []finance.RecordIssue) []IssueDTO {
	out := make([]IssueDTO, 0, len(issues))
	for _, is := range issues {
		out = append(out, IssueFrom(is))
	}
	return out
}

// OrphanInvoiceDTO factura cuyo contrato no existe.
type OrphanInvoiceDTO struct {
	InvoiceID   string          `json:"invoice_id"`
	ContractID  string          `json:"contract_id"`
	Status      string          `json:"status"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

// FinancialSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los valores vienen redondeados a 2 decimales; el cálculo interno no redondea.
type FinancialSummaryDTO struct {
	ReferenceMonth string `json:"reference_month,omitempty"` // vacío = todas las facturas
	DateLabel      string `json:"date_label"`                // ej: "Septiembre 2026"

	ForecastMonthly decimal.Decimal `json:"forecast_monthly"` // Σ costo mensual de contratos vigentes
	RealizedTotal   decimal.Decimal `json:"realized_total"`   // Σ facturas PAID
	PendingTotal    decimal.Decimal `json:"pending_total"`    // Σ facturas no PAID
	ReconciledTotal decimal.Decimal `json:"reconciled_total"` // realizado + pendiente
	TelephonyTotal  decimal.Decimal `json:"telephony_total"`  // Σ líneas telefónicas del período

	ContractsInForce int `json:"contracts_in_force"`
	PaidCount        int `json:"paid_count"`
	PendingCount     int `json:"pending_count"`
	DivergentCount   int `json:"divergent_count"`

	Orphans []OrphanInvoiceDTO `json:"orphans"`
	Issues  []IssueDTO         `json:"issues"`
}
