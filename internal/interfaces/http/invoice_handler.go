package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/billing"
	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	status   *billing.StatusUseCase
	audit    *usecase.AuditUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, status *billing.StatusUseCase, audit *usecase.AuditUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, status: status, audit: audit}
}

// Create godoc
// @Summary      Registrar factura mensual
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.invoices.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas con su conciliación
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        month        query  string  false  "Mes de referencia YYYY-MM"
// @Param        contract_id  query  string  false  "Contrato"
// @Param        status       query  string  false  "PENDING | SENT_VENDOR_A | SENT_VENDOR_B | PAID"
// @Param        include_canceled  query  bool  false  "Incluir desactivadas"
// @Success      200  {object}  dto.ListResponse[dto.InvoiceResponse]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter, err := invoiceFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.invoices.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos y valores de la factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.invoices.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Desactivar factura (sale de listados y totales)
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/cancel [put]
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.invoices.Cancel(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reactivate godoc
// @Summary      Reactivar factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/reactivate [put]
func (h *InvoiceHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.invoices.Reactivate(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la factura
// @Description  PAID sin payment_date se acepta: la respuesta trae incomplete=true y warning.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la factura"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ChangeStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [put]
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.status.ChangeStatus(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de estados de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.ListResponse[dto.StatusEventResponse]
// @Router       /api/invoices/{id}/history [get]
func (h *InvoiceHandler) History(c *fiber.Ctx) error {
	out, err := h.audit.InvoiceHistory(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func invoiceFilter(c *fiber.Ctx) (repository.InvoiceFilter, error) {
	var f repository.InvoiceFilter
	f.ContractID = c.Query("contract_id")
	f.IncludeCanceled = c.QueryBool("include_canceled", false)
	if m := c.Query("month"); m != "" {
		month, err := entity.ParseReferenceMonth(m)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		f.ReferenceMonth = month
	}
	if s := c.Query("status"); s != "" {
		st, err := entity.ParseInvoiceStatus(s)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidStatus, err)
		}
		f.Status = st
	}
	return f, nil
}
