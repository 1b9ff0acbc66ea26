package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTelephonyLineRequest entrada para registrar una línea telefónica.
type CreateTelephonyLineRequest struct {
	PhoneNumber    string          `json:"phone_number" validate:"required"`
	MonthlyValue   decimal.Decimal `json:"monthly_value"`
	Description    string          `json:"description"`
	ReferenceMonth string          `json:"reference_month"` // YYYY-MM
	CostCenter     string          `json:"cost_center"`
	Branch         string          `json:"branch"`
	Carrier        string          `json:"carrier"` // CARRIER_A | CARRIER_B | MANUAL (default)
}

// UpdateTelephonyLineRequest actualización parcial.
type UpdateTelephonyLineRequest struct {
	PhoneNumber    *string          `json:"phone_number"`
	MonthlyValue   *decimal.Decimal `json:"monthly_value"`
	Description    *string          `json:"description"`
	ReferenceMonth *string          `json:"reference_month"`
	CostCenter     *string          `json:"cost_center"`
	Branch         *string          `json:"branch"`
	Carrier        *string          `json:"carrier"`
}

// TelephonyLineResponse salida de una línea.
type TelephonyLineResponse struct {
	ID             string          `json:"id"`
	PhoneNumber    string          `json:"phone_number"`
	MonthlyValue   decimal.Decimal `json:"monthly_value"`
	Description    string          `json:"description"`
	ReferenceMonth string          `json:"reference_month"`
	CostCenter     string          `json:"cost_center"`
	Branch         string          `json:"branch"`
	Carrier        string          `json:"carrier"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BranchTotalDTO total prorrateado de una filial.
type BranchTotalDTO struct {
	Branch  string          `json:"branch"`
	Total   decimal.Decimal `json:"total"`
	Lines   int             `json:"lines"`
	Display string          `json:"display"` // ej: "R$ 1.200,50"
}

// ApportionmentResponse respuesta de GET /api/telephony/apportionment.
type ApportionmentResponse struct {
	ReferenceMonth string           `json:"reference_month,omitempty"`
	Carrier        string           `json:"carrier"`
	Branches       []BranchTotalDTO `json:"branches"`
	Total          decimal.Decimal  `json:"total"`
	Issues         []IssueDTO       `json:"issues"`
}
