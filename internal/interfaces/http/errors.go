package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
)

const internalErrorKey = "internal_error"

// errorMapping sentinel del dominio → status HTTP y código.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidDuration, fiber.StatusBadRequest, "INVALID_DURATION"},
	{domain.ErrMalformedMonetaryValue, fiber.StatusBadRequest, "MALFORMED_VALUE"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrMissingContractReference, fiber.StatusUnprocessableEntity, "MISSING_CONTRACT"},
	{domain.ErrPaidInvoiceLocked, fiber.StatusConflict, "PAID_INVOICE_LOCKED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeError responde con el status que corresponde al error.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	// el detalle (SQL, driver) solo va al log; RequestLogger lo lee de Locals
	c.Locals(internalErrorKey, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
