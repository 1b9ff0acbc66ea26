package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del motor de conciliación. Todos son recuperables: el motor aísla el
// registro afectado y continúa con el resto.
var (
	// ErrInvalidDuration: durationMonths <= 0. El cálculo usa 1 y lo reporta
	// como advertencia de calidad de datos.
	ErrInvalidDuration = errors.New("duración del contrato inválida")
	// ErrMissingContractReference: la factura apunta a un contrato inexistente (huérfana).
	ErrMissingContractReference = errors.New("referencia a contrato inexistente")
	// ErrIncompleteStatusTransition: paso a PAID sin fecha de pago.
	ErrIncompleteStatusTransition = errors.New("transición a pagado sin fecha de pago")
	// ErrMalformedMonetaryValue: valor monetario negativo o ausente.
	ErrMalformedMonetaryValue = errors.New("valor monetario mal formado")
	ErrInvalidStatus          = errors.New("estado de factura desconocido")
	ErrPaidInvoiceLocked      = errors.New("la factura está pagada y no admite cambios de valores")
)
