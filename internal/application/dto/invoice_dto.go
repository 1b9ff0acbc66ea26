package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentDTO referencia a un archivo guardado por el almacenamiento externo.
type DocumentDTO struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// CreateInvoiceRequest entrada para registrar la factura mensual de un contrato.
// La factura nace en estado PENDING.
type CreateInvoiceRequest struct {
	ContractID        string          `json:"contract_id" validate:"required"`
	ReferenceMonth    string          `json:"reference_month" validate:"required"` // YYYY-MM
	DueDate           *string         `json:"due_date"`
	CircuitNumber     string          `json:"circuit_number"`
	OriginalAmount    decimal.Decimal `json:"original_amount"`
	Surcharge         decimal.Decimal `json:"surcharge"`
	Discount          decimal.Decimal `json:"discount"`
	Notes             string          `json:"notes"`
	PrimaryDocument   DocumentDTO     `json:"primary_document"`
	SecondaryDocument *DocumentDTO    `json:"secondary_document"`
}

// UpdateInvoiceRequest actualización parcial de datos y valores (el estado va por ChangeStatusRequest).
// ContractID mueve la factura a otro contrato existente.
type UpdateInvoiceRequest struct {
	ContractID        *string          `json:"contract_id"`
	ReferenceMonth    *string          `json:"reference_month"`
	DueDate           *string          `json:"due_date"`
	CircuitNumber     *string          `json:"circuit_number"`
	OriginalAmount    *decimal.Decimal `json:"original_amount"`
	Surcharge         *decimal.Decimal `json:"surcharge"`
	Discount          *decimal.Decimal `json:"discount"`
	Notes             *string          `json:"notes"`
	PrimaryDocument   *DocumentDTO     `json:"primary_document"`
	SecondaryDocument *DocumentDTO     `json:"secondary_document"`
}

// ReconciliationDTO conciliación de la factura contra el costo mensual esperado.
type ReconciliationDTO struct {
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	Delta          decimal.Decimal `json:"delta"`
	Divergent      bool            `json:"divergent"`
}

// InvoiceResponse salida de una factura. Reconciliation es nil si la factura es
// huérfana (Orphan) o tiene valores mal formados (Issue).
type InvoiceResponse struct {
	ID                string             `json:"id"`
	ContractID        string             `json:"contract_id"`
	ContractName      string             `json:"contract_name,omitempty"`
	ReferenceMonth    string             `json:"reference_month"`
	DueDate           *string            `json:"due_date,omitempty"`
	CircuitNumber     string             `json:"circuit_number,omitempty"`
	OriginalAmount    decimal.Decimal    `json:"original_amount"`
	Surcharge         decimal.Decimal    `json:"surcharge"`
	Discount          decimal.Decimal    `json:"discount"`
	FinalAmount       decimal.Decimal    `json:"final_amount"`
	Status            string             `json:"status"`
	PaymentDate       *string            `json:"payment_date,omitempty"`
	Notes             string             `json:"notes"`
	PrimaryDocument   DocumentDTO        `json:"primary_document"`
	SecondaryDocument *DocumentDTO       `json:"secondary_document,omitempty"`
	Reconciliation    *ReconciliationDTO `json:"reconciliation,omitempty"`
	Orphan            bool               `json:"orphan"`
	Issue             *IssueDTO          `json:"issue,omitempty"`
	Active            bool               `json:"active"`
	CanceledAt        *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// ChangeStatusRequest entrada de PUT /api/invoices/:id/status.
type ChangeStatusRequest struct {
	Status      string  `json:"status" validate:"required"`
	PaymentDate *string `json:"payment_date"` // YYYY-MM-DD; requerido en la práctica para PAID
	Notes       *string `json:"notes"`        // presente = sobrescribe
}

// ChangeStatusResponse resultado del cambio de estado. Incomplete indica un PAID sin fecha de pago.
type ChangeStatusResponse struct {
	Invoice    InvoiceResponse `json:"invoice"`
	EventID    string          `json:"event_id"`
	Incomplete bool            `json:"incomplete"`
	Warning    string          `json:"warning,omitempty"`
}

// StatusEventResponse entrada del historial de estados de una factura.
type StatusEventResponse struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	PaymentDate *string   `json:"payment_date,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
	Incomplete  bool      `json:"incomplete"`
}
