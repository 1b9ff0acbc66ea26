package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReferenceMonth par año + mes (01–12) al que corresponde una factura o línea telefónica.
// Formato de intercambio: "YYYY-MM".
type ReferenceMonth struct {
	Year  int
	Month time.Month
}

// ParseReferenceMonth interpreta "YYYY-MM". El mes debe tener dos dígitos.
func ParseReferenceMonth(s string) (ReferenceMonth, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 || !digits(parts[0]) || !digits(parts[1]) {
		return ReferenceMonth{}, fmt.Errorf("mes de referencia %q: formato esperado YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return ReferenceMonth{}, fmt.Errorf("mes de referencia %q: año inválido", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ReferenceMonth{}, fmt.Errorf("mes de referencia %q: mes inválido", s)
	}
	return ReferenceMonth{Year: year, Month: time.Month(month)}, nil
}

// digits indica si s tiene solo dígitos ASCII (Atoi acepta signo).
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ReferenceMonthOf devuelve el mes de referencia de una fecha.
func ReferenceMonthOf(t time.Time) ReferenceMonth {
	return ReferenceMonth{Year: t.Year(), Month: t.Month()}
}

// String formatea como "YYYY-MM".
func (m ReferenceMonth) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero indica si no se asignó mes.
func (m ReferenceMonth) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
