package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
)

// ContractHandler maneja las peticiones HTTP de contratos.
type ContractHandler struct {
	uc *usecase.ContractUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *usecase.ContractUseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contrato
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContractRequest  true  "Datos del contrato"
// @Success      201   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contratos
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        include_canceled  query  bool  false  "Incluir cancelados"
// @Success      200  {object}  dto.ListResponse[dto.ContractResponse]
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryBool("include_canceled", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener contrato
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [get]
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar contrato
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del contrato"
// @Param        body  body  dto.UpdateContractRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar contrato (sale del pronóstico)
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Router       /api/contracts/{id}/cancel [put]
func (h *ContractHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reactivate godoc
// @Summary      Reactivar contrato
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Router       /api/contracts/{id}/reactivate [put]
func (h *ContractHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.uc.Reactivate(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar contrato
// @Tags         contracts
// @Security     Bearer
// @Param        id   path  string  true  "ID del contrato"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [delete]
func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
