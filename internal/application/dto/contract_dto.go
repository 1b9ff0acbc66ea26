package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContractRequest entrada para registrar un contrato.
type CreateContractRequest struct {
	Name                string          `json:"name" validate:"required"`
	Kind                string          `json:"kind"`
	TotalValue          decimal.Decimal `json:"total_value"`
	DurationMonths      int             `json:"duration_months" validate:"min=1"`
	BillingStartDate    *string         `json:"billing_start_date"` // YYYY-MM-DD
	DueDay              int             `json:"due_day" validate:"min=0,max=31"`
	CostCenter          string          `json:"cost_center"`
	Branch              string          `json:"branch"`
	VendorName          string          `json:"vendor_name"`
	VendorTaxID         string          `json:"vendor_tax_id"`
	SecondVendorName    string          `json:"second_vendor_name"`
	SecondVendorTaxID   string          `json:"second_vendor_tax_id"`
	HasApportionment    bool            `json:"has_apportionment"`
	ApportionedBranches []string        `json:"apportioned_branches"`
	Identifiers         string          `json:"identifiers"`
	AdditionalInfo      string          `json:"additional_info"`
}

// UpdateContractRequest actualización parcial: solo se aplican los campos presentes.
type UpdateContractRequest struct {
	Name                *string          `json:"name"`
	Kind                *string          `json:"kind"`
	TotalValue          *decimal.Decimal `json:"total_value"`
	DurationMonths      *int             `json:"duration_months"`
	BillingStartDate    *string          `json:"billing_start_date"`
	DueDay              *int             `json:"due_day"`
	CostCenter          *string          `json:"cost_center"`
	Branch              *string          `json:"branch"`
	VendorName          *string          `json:"vendor_name"`
	VendorTaxID         *string          `json:"vendor_tax_id"`
	SecondVendorName    *string          `json:"second_vendor_name"`
	SecondVendorTaxID   *string          `json:"second_vendor_tax_id"`
	HasApportionment    *bool            `json:"has_apportionment"`
	ApportionedBranches []string         `json:"apportioned_branches"`
	Identifiers         *string          `json:"identifiers"`
	AdditionalInfo      *string          `json:"additional_info"`
}

// ContractResponse salida de un contrato con su costo mensual derivado.
type ContractResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Kind                string          `json:"kind"`
	TotalValue          decimal.Decimal `json:"total_value"`
	DurationMonths      int             `json:"duration_months"`
	ExpectedMonthlyCost decimal.Decimal `json:"expected_monthly_cost"` // redondeado a 2 decimales
	BillingStartDate    *string         `json:"billing_start_date,omitempty"`
	DueDay              int             `json:"due_day,omitempty"`
	CostCenter          string          `json:"cost_center"`
	Branch              string          `json:"branch"`
	VendorName          string          `json:"vendor_name"`
	VendorTaxID         string          `json:"vendor_tax_id"`
	SecondVendorName    string          `json:"second_vendor_name,omitempty"`
	SecondVendorTaxID   string          `json:"second_vendor_tax_id,omitempty"`
	HasApportionment    bool            `json:"has_apportionment"`
	ApportionedBranches []string        `json:"apportioned_branches"`
	Identifiers         string          `json:"identifiers,omitempty"`
	AdditionalInfo      string          `json:"additional_info,omitempty"`
	InForce             bool            `json:"in_force"`
	CanceledAt          *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
