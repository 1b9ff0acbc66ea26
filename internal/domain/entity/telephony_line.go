package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Carrier operadora de una línea telefónica.
type Carrier string

// Operadoras conocidas. MANUAL identifica líneas cargadas a mano.
const (
	CarrierA      Carrier = "CARRIER_A"
	CarrierB      Carrier = "CARRIER_B"
	CarrierManual Carrier = "MANUAL"
)

// ParseCarrier valida la operadora.
func ParseCarrier(s string) (Carrier, error) {
	c := Carrier(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CarrierA, CarrierB, CarrierManual:
		return c, nil
	}
	return "", fmt.Errorf("operadora %q no reconocida", s)
}

// TelephonyLine línea telefónica con su costo mensual. Branch vacío = sin clasificar.
type TelephonyLine struct {
	ID             string
	PhoneNumber    string
	MonthlyValue   decimal.Decimal
	Description    string
	ReferenceMonth ReferenceMonth
	CostCenter     string
	Branch         string
	Carrier        Carrier
	CreatedAt      time.Time
}
