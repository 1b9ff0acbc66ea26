package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

func checkNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &MonetaryFieldError{Field: field, Value: v}
	}
	return nil
}

// ValidateContractValues verifica que total_value sea no negativo.
func ValidateContractValues(c *entity.Contract) error {
	return checkNonNegative("total_value", c.TotalValue)
}

// ValidateInvoiceValues verifica original_amount, surcharge y discount.
// Devuelve el primer campo inválido.
func ValidateInvoiceValues(inv *entity.Invoice) error {
	if err := checkNonNegative("original_amount", inv.OriginalAmount); err != nil {
		return err
	}
	if err := checkNonNegative("surcharge", inv.Surcharge); err != nil {
		return err
	}
	return checkNonNegative("discount", inv.Discount)
}

// ValidateLineValues verifica monthly_value de una línea telefónica.
func ValidateLineValues(l *entity.TelephonyLine) error {
	return checkNonNegative("monthly_value", l.MonthlyValue)
}
