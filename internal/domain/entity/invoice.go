package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura. Solo los valores declarados son válidos;
// los demás se rechazan en ParseInvoiceStatus.
type InvoiceStatus string

// Estados de la factura.
const (
	InvoiceStatusPending     InvoiceStatus = "PENDING"       // Pendiente de envío del boleto
	InvoiceStatusSentVendorA InvoiceStatus = "SENT_VENDOR_A" // Enviada a la empresa A
	InvoiceStatusSentVendorB InvoiceStatus = "SENT_VENDOR_B" // Enviada a la empresa B
	InvoiceStatusPaid        InvoiceStatus = "PAID"          // Pagada
)

// InvoiceStatuses lista todos los estados en orden de presentación.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusSentVendorA,
	InvoiceStatusSentVendorB,
	InvoiceStatusPaid,
}

// Valid indica si el estado es uno de los declarados.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusSentVendorA, InvoiceStatusSentVendorB, InvoiceStatusPaid:
		return true
	}
	return false
}

// ParseInvoiceStatus convierte texto libre (sin distinguir mayúsculas) en estado.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	st := InvoiceStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("estado %q no reconocido", s)
	}
	return st, nil
}

// DocumentRef referencia a un archivo adjunto guardado por el almacenamiento externo.
type DocumentRef struct {
	Path string
	Name string
}

// IsZero indica si no hay documento.
func (d DocumentRef) IsZero() bool { return d.Path == "" }

// Invoice representa una factura mensual de un contrato.
type Invoice struct {
	ID                string
	ContractID        string
	ReferenceMonth    ReferenceMonth
	DueDate           *time.Time
	CircuitNumber     string
	OriginalAmount    decimal.Decimal
	Surcharge         decimal.Decimal
	Discount          decimal.Decimal
	Status            InvoiceStatus
	PaymentDate       *time.Time
	Notes             string
	PrimaryDocument   DocumentRef // boleto (obligatorio)
	SecondaryDocument DocumentRef // nota fiscal (opcional)
	CanceledAt        *time.Time  // nil = activa
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FinalAmount valor a pagar: original + acréscimo − descuento. No se recorta en cero.
func (i *Invoice) FinalAmount() decimal.Decimal {
	return i.OriginalAmount.Add(i.Surcharge).Sub(i.Discount)
}

// IsPaid indica si la factura está en estado PAID.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// Active indica si la factura no fue desactivada.
func (i *Invoice) Active() bool {
	return i.CanceledAt == nil
}
