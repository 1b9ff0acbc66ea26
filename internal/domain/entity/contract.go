package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract representa un contrato con proveedor cuyo valor total se amortiza en meses.
// El costo mensual esperado nunca se almacena: se deriva de TotalValue y DurationMonths.
type Contract struct {
	ID                  string
	Name                string // nombre amigable
	Kind                string // tipo de servicio (link, software, locación, ...)
	TotalValue          decimal.Decimal
	DurationMonths      int
	BillingStartDate    *time.Time
	DueDay              int // 0 = sin día fijo; 1–31
	CostCenter          string
	Branch              string
	VendorName          string
	VendorTaxID         string
	SecondVendorName    string
	SecondVendorTaxID   string
	HasApportionment    bool
	ApportionedBranches []string
	Identifiers         string
	AdditionalInfo      string
	CanceledAt          *time.Time // nil = vigente
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// InForce indica si el contrato está vigente (no cancelado).
func (c *Contract) InForce() bool {
	return c.CanceledAt == nil
}
