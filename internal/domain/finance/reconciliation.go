package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// Tolerancia fija de divergencia: una unidad monetaria. Absorbe el ruido de redondeo
// de la amortización; no es configurable.
var divergenceThreshold = decimal.NewFromInt(1)

// DivergenceThreshold devuelve la tolerancia (1.00).
func DivergenceThreshold() decimal.Decimal { return divergenceThreshold }

// Reconciliation resultado de conciliar una factura contra su contrato.
type Reconciliation struct {
	InvoiceID      string
	ContractID     string
	FinalAmount    decimal.Decimal
	ExpectedAmount decimal.Decimal
	Delta          decimal.Decimal // FinalAmount − ExpectedAmount
	Divergent      bool            // |Delta| > 1.00
}

// Reconcile calcula el valor final de la factura y la divergencia contra el costo
// mensual esperado del contrato.
//
// Errores:
//   - domain.ErrMissingContractReference si contract es nil o no es el contrato de la factura.
//   - domain.ErrMalformedMonetaryValue (*MonetaryFieldError) si algún valor es negativo.
func Reconcile(inv *entity.Invoice, contract *entity.Contract) (Reconciliation, error) {
	if inv == nil {
		return Reconciliation{}, fmt.Errorf("conciliar: %w: factura nula", domain.ErrInvalidInput)
	}
	if contract == nil || contract.ID != inv.ContractID {
		return Reconciliation{}, fmt.Errorf("factura %s → contrato %s: %w",
			inv.ID, inv.ContractID, domain.ErrMissingContractReference)
	}
	if err := ValidateInvoiceValues(inv); err != nil {
		return Reconciliation{}, fmt.Errorf("factura %s: %w", inv.ID, err)
	}
	if err := ValidateContractValues(contract); err != nil {
		return Reconciliation{}, fmt.Errorf("contrato %s: %w", contract.ID, err)
	}

	final := inv.FinalAmount()
	expected := ExpectedMonthlyCost(contract)
	delta := final.Sub(expected)
	return Reconciliation{
		InvoiceID:      inv.ID,
		ContractID:     contract.ID,
		FinalAmount:    final,
		ExpectedAmount: expected,
		Delta:          delta,
		Divergent:      IsDivergent(delta),
	}, nil
}

// IsDivergent indica si |delta| supera la tolerancia.
func IsDivergent(delta decimal.Decimal) bool {
	return delta.Abs().GreaterThan(divergenceThreshold)
}
