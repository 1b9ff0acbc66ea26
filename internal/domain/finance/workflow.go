package finance

import (
	"fmt"
	"time"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// TransitionOptions datos opcionales capturados al cambiar el estado.
type TransitionOptions struct {
	PaymentDate *time.Time
	Notes       *string // nil = no tocar las observaciones
	Actor       string
	At          time.Time
}

// InvoiceUpdateInstruction instrucción que el almacenamiento debe aplicar de forma atómica.
// El motor no modifica la factura; solo describe el cambio.
type InvoiceUpdateInstruction struct {
	InvoiceID        string
	FromStatus       entity.InvoiceStatus
	Status           entity.InvoiceStatus
	PaymentDate      *time.Time // solo cuando Status == PAID y se informó la fecha
	ClearPaymentDate bool       // al salir de PAID
	Notes            *string    // sobrescribe (no concatena) cuando no es nil
	Incomplete       bool
	Warning          error // ErrIncompleteStatusTransition cuando Incomplete
	Event            entity.StatusEvent
}

// Transition valida el nuevo estado y produce la instrucción de actualización.
//
// Las transiciones no tienen dirección: cualquier estado puede pasar a cualquier otro
// (incluido revertir un PAID marcado por error). Pasar a PAID sin fecha de pago no
// es fatal: la instrucción sale marcada como incompleta y sin fecha. Si la factura
// ya estaba PAID con fecha, esa fecha se conserva (ApplyTo no la toca).
func Transition(inv *entity.Invoice, to entity.InvoiceStatus, opts TransitionOptions) (InvoiceUpdateInstruction, error) {
	if inv == nil {
		return InvoiceUpdateInstruction{}, fmt.Errorf("transición: %w: factura nula", domain.ErrInvalidInput)
	}
	if !to.Valid() {
		return InvoiceUpdateInstruction{}, fmt.Errorf("transición de factura %s: %w: %q", inv.ID, domain.ErrInvalidStatus, to)
	}

	ins := InvoiceUpdateInstruction{
		InvoiceID:  inv.ID,
		FromStatus: inv.Status,
		Status:     to,
		Notes:      opts.Notes,
	}

	if to == entity.InvoiceStatusPaid {
		if opts.PaymentDate == nil {
			ins.Incomplete = true
			ins.Warning = fmt.Errorf("factura %s: %w", inv.ID, domain.ErrIncompleteStatusTransition)
		} else {
			d := *opts.PaymentDate
			ins.PaymentDate = &d
		}
	} else if inv.Status == entity.InvoiceStatusPaid {
		ins.ClearPaymentDate = true
	}

	ins.Event = entity.StatusEvent{
		InvoiceID:   inv.ID,
		FromStatus:  inv.Status,
		ToStatus:    to,
		PaymentDate: ins.PaymentDate,
		Notes:       opts.Notes,
		Actor:       opts.Actor,
		Timestamp:   opts.At,
		Incomplete:  ins.Incomplete,
	}
	return ins, nil
}

// ApplyTo devuelve una copia de la factura con la instrucción aplicada.
// Es la semántica que los repositorios replican en SQL.
func (ins InvoiceUpdateInstruction) ApplyTo(inv entity.Invoice) entity.Invoice {
	inv.Status = ins.Status
	switch {
	case ins.PaymentDate != nil:
		d := *ins.PaymentDate
		inv.PaymentDate = &d
	case ins.ClearPaymentDate:
		inv.PaymentDate = nil
	}
	if ins.Notes != nil {
		inv.Notes = *ins.Notes
	}
	return inv
}
