package finance

import (
	"fmt"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// MonetaryEditPolicy decide si los campos monetarios de una factura pueden cambiar.
// Aislado aquí para poder endurecerlo sin tocar la matemática de conciliación.
type MonetaryEditPolicy interface {
	CheckMonetaryEdit(current *entity.Invoice) error
}

// PermissiveEditPolicy permite editar valores en cualquier estado (comportamiento actual).
type PermissiveEditPolicy struct{}

func (PermissiveEditPolicy) CheckMonetaryEdit(*entity.Invoice) error { return nil }

// LockPaidInvoices rechaza cambios de valores en facturas PAID.
// Para corregirlas primero hay que reabrirlas con una transición de estado.
type LockPaidInvoices struct{}

func (LockPaidInvoices) CheckMonetaryEdit(current *entity.Invoice) error {
	if current != nil && current.IsPaid() {
		return fmt.Errorf("factura %s: %w", current.ID, domain.ErrPaidInvoiceLocked)
	}
	return nil
}

// EditPolicyFor devuelve la política según la configuración.
func EditPolicyFor(lockPaid bool) MonetaryEditPolicy {
	if lockPaid {
		return LockPaidInvoices{}
	}
	return PermissiveEditPolicy{}
}

// MonetaryFieldsChanged indica si cambió original_amount, surcharge o discount.
func MonetaryFieldsChanged(current, next *entity.Invoice) bool {
	return !current.OriginalAmount.Equal(next.OriginalAmount) ||
		!current.Surcharge.Equal(next.Surcharge) ||
		!current.Discount.Equal(next.Discount)
}
