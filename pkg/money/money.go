// Package money formatea valores monetarios para presentación (reportes, CLI, logs).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Round2 redondea a 2 decimales (half away from zero). Solo para presentación.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Format devuelve el valor en reales con separadores pt-BR, ej: "R$ 1.200,50".
func Format(v decimal.Decimal) string {
	r := v.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	// InexactFloat64 es suficiente con 2 decimales ya fijados.
	return sign + printer.Sprintf("R$ %v", number.Decimal(r.InexactFloat64(), number.Scale(2)))
}
