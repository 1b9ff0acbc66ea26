package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// OrphanInvoice factura cuyo contrato no existe en el snapshot.
type OrphanInvoice struct {
	InvoiceID   string
	ContractID  string
	Status      entity.InvoiceStatus
	FinalAmount decimal.Decimal // informativo, no entra en los totales
}

// Summary totales del dashboard financiero.
type Summary struct {
	ForecastMonthly decimal.Decimal // Σ costo mensual esperado de contratos vigentes
	RealizedTotal   decimal.Decimal // Σ valor final de facturas PAID
	PendingTotal    decimal.Decimal // Σ valor final de facturas no PAID

	ContractsInForce int
	PaidCount        int
	PendingCount     int
	DivergentCount   int

	Orphans []OrphanInvoice
	Issues  []RecordIssue
}

// ReconciledTotal realizado + pendiente (excluye huérfanas y mal formadas).
func (s Summary) ReconciledTotal() decimal.Decimal {
	return s.RealizedTotal.Add(s.PendingTotal)
}

// Summarize combina amortización de contratos y buckets de estado de facturas.
//
// Los contratos cancelados resuelven referencias de facturas pero no suman al
// pronóstico. Las facturas desactivadas se ignoran. Las facturas huérfanas y los registros mal formados quedan fuera
// de los totales. Una huérfana aparece solo en Orphans; Issues lleva el resto.
// Recalcula todo en cada llamada.
func Summarize(contracts []*entity.Contract, invoices []*entity.Invoice) Summary {
	s := Summary{
		ForecastMonthly: decimal.Zero,
		RealizedTotal:   decimal.Zero,
		PendingTotal:    decimal.Zero,
	}

	byID := make(map[string]*entity.Contract, len(contracts))
	for _, c := range contracts {
		if c == nil {
			continue
		}
		byID[c.ID] = c
		if err := ValidateContractValues(c); err != nil {
			s.Issues = append(s.Issues, newIssue(RecordContract, c.ID, fmt.Errorf("contrato %s: %w", c.ID, err)))
			continue
		}
		if err := CheckDuration(c); err != nil {
			s.Issues = append(s.Issues, newIssue(RecordContract, c.ID, err))
		}
		if !c.InForce() {
			continue
		}
		s.ContractsInForce++
		s.ForecastMonthly = s.ForecastMonthly.Add(ExpectedMonthlyCost(c))
	}

	for _, inv := range invoices {
		if inv == nil || !inv.Active() {
			continue
		}
		rec, err := Reconcile(inv, byID[inv.ContractID])
		if err != nil {
			if errors.Is(err, domain.ErrMissingContractReference) {
				s.Orphans = append(s.Orphans, OrphanInvoice{
					InvoiceID:   inv.ID,
					ContractID:  inv.ContractID,
					Status:      inv.Status,
					FinalAmount: inv.FinalAmount(),
				})
				continue
			}
			s.Issues = append(s.Issues, newIssue(RecordInvoice, inv.ID, err))
			continue
		}
		if rec.Divergent {
			s.DivergentCount++
		}
		if inv.IsPaid() {
			s.PaidCount++
			s.RealizedTotal = s.RealizedTotal.Add(rec.FinalAmount)
		} else {
			s.PendingCount++
			s.PendingTotal = s.PendingTotal.Add(rec.FinalAmount)
		}
	}
	return s
}
