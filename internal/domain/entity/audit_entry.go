package entity

import (
	"fmt"
	"strings"
	"time"
)

// Acciones registradas en el log de auditoría.
const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionDelete       = "DELETE"
	AuditActionCancel       = "CANCEL"
	AuditActionReactivate   = "REACTIVATE"
	AuditActionStatusChange = "STATUS_CHANGE"
)

// Objetivos de auditoría.
const (
	AuditTargetContract      = "contract"
	AuditTargetInvoice       = "invoice"
	AuditTargetTelephonyLine = "telephony_line"
)

// AuditEntry registro del log de auditoría: quién hizo qué sobre qué registro.
// Details lleva el resumen de cambios ("campo: antes → después; ...").
type AuditEntry struct {
	ID        string
	Actor     string
	Action    string
	Target    string
	TargetID  string
	Details   string
	Timestamp time.Time
}

// ChangeSet acumula los campos modificados en una actualización para AuditEntry.Details.
type ChangeSet struct {
	items []string
}

// Add registra el cambio si before y after difieren en su forma textual.
func (c *ChangeSet) Add(field string, before, after interface{}) {
	b, a := fmt.Sprint(before), fmt.Sprint(after)
	if b == a {
		return
	}
	c.items = append(c.items, fmt.Sprintf("%s: %q → %q", field, b, a))
}

// Empty indica que no hubo cambios.
func (c *ChangeSet) Empty() bool { return len(c.items) == 0 }

func (c *ChangeSet) String() string { return strings.Join(c.items, "; ") }
