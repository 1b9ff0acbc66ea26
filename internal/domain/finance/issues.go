// Package finance contiene el motor de conciliación financiera: amortización de
// contratos, conciliación de facturas, prorrateo de telefonía por filial, resumen
// financiero y flujo de estados de factura.
//
// Todas las operaciones son funciones puras sobre snapshots que entrega el caller;
// no hay estado entre llamadas ni accesos a persistencia.
package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
)

// IssueKind clasifica un problema de calidad de datos detectado en un registro.
type IssueKind string

const (
	IssueInvalidDuration            IssueKind = "INVALID_DURATION"
	IssueMissingContractReference   IssueKind = "MISSING_CONTRACT_REFERENCE"
	IssueMalformedMonetaryValue     IssueKind = "MALFORMED_MONETARY_VALUE"
	IssueIncompleteStatusTransition IssueKind = "INCOMPLETE_STATUS_TRANSITION"
	IssueUnknown                    IssueKind = "UNKNOWN"
)

// Tipos de registro reportados en RecordIssue.Record.
const (
	RecordContract      = "contract"
	RecordInvoice       = "invoice"
	RecordTelephonyLine = "telephony_line"
)

// RecordIssue identifica un registro excluido o marcado durante una agregación.
type RecordIssue struct {
	Kind     IssueKind
	Record   string
	RecordID string
	Field    string
	Err      error
}

// KindOf mapea un error de dominio a su IssueKind.
func KindOf(err error) IssueKind {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration):
		return IssueInvalidDuration
	case errors.Is(err, domain.ErrMissingContractReference):
		return IssueMissingContractReference
	case errors.Is(err, domain.ErrMalformedMonetaryValue):
		return IssueMalformedMonetaryValue
	case errors.Is(err, domain.ErrIncompleteStatusTransition):
		return IssueIncompleteStatusTransition
	}
	return IssueUnknown
}

func newIssue(record, id string, err error) RecordIssue {
	issue := RecordIssue{Kind: KindOf(err), Record: record, RecordID: id, Err: err}
	var fe *MonetaryFieldError
	if errors.As(err, &fe) {
		issue.Field = fe.Field
	}
	return issue
}

// MonetaryFieldError indica qué campo monetario está mal formado.
// Unwrap devuelve domain.ErrMalformedMonetaryValue.
type MonetaryFieldError struct {
	Field string
	Value decimal.Decimal
}

func (e *MonetaryFieldError) Error() string {
	return fmt.Sprintf("%s: %s = %s", domain.ErrMalformedMonetaryValue.Error(), e.Field, e.Value.String())
}

func (e *MonetaryFieldError) Unwrap() error { return domain.ErrMalformedMonetaryValue }
