package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// dec construye un decimal desde string; falla el test si el literal es inválido.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDec compara decimales por valor (100 == 100.00).
func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

// contractA contrato anual: 1200.00 en 12 meses.
func contractA() *entity.Contract {
	return &entity.Contract{ID: "c-a", Name: "Link dedicado", TotalValue: dec("1200.00"), DurationMonths: 12}
}

func invoiceFor(id, contractID, original string, status entity.InvoiceStatus) *entity.Invoice {
	return &entity.Invoice{
		ID:             id,
		ContractID:     contractID,
		ReferenceMonth: entity.ReferenceMonth{Year: 2026, Month: 9},
		OriginalAmount: dec(original),
		Surcharge:      decimal.Zero,
		Discount:       decimal.Zero,
		Status:         status,
	}
}
