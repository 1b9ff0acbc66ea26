package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// ExpectedMonthlyCost costo mensual esperado = TotalValue / max(DurationMonths, 1).
// No redondea: el redondeo se aplica solo al presentar.
func ExpectedMonthlyCost(c *entity.Contract) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return c.TotalValue.Div(decimal.NewFromInt(int64(effectiveDuration(c))))
}

// CheckDuration reporta ErrInvalidDuration si DurationMonths <= 0.
// ExpectedMonthlyCost sigue funcionando (usa 1); esto es solo una advertencia.
func CheckDuration(c *entity.Contract) error {
	if c.DurationMonths < 1 {
		return fmt.Errorf("contrato %s: %w (%d meses)", c.ID, domain.ErrInvalidDuration, c.DurationMonths)
	}
	return nil
}

func effectiveDuration(c *entity.Contract) int {
	if c.DurationMonths < 1 {
		return 1
	}
	return c.DurationMonths
}
