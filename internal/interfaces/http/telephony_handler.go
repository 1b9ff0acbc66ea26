package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
)

// TelephonyHandler líneas telefónicas y prorrateo por filial.
type TelephonyHandler struct {
	uc *usecase.TelephonyUseCase
}

func NewTelephonyHandler(uc *usecase.TelephonyUseCase) *TelephonyHandler {
	return &TelephonyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar línea telefónica
// @Tags         telephony
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTelephonyLineRequest  true  "Línea"
// @Success      201   {object}  dto.TelephonyLineResponse
// @Router       /api/telephony [post]
func (h *TelephonyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTelephonyLineRequest
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
// @Summary      Listar líneas
// @Tags         telephony
// @Security     Bearer
// @Produce      json
// @Param        carrier  query  string  false  "CARRIER_A | CARRIER_B | MANUAL | ALL"
// @Param        month    query  string  false  "Mes de referencia YYYY-MM"
// @Success      200  {object}  dto.ListResponse[dto.TelephonyLineResponse]
// @Router       /api/telephony [get]
func (h *TelephonyHandler) List(c *fiber.Ctx) error {
	f, err := usecase.ParseTelephonyFilter(c.Query("carrier"), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea
// @Tags         telephony
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.TelephonyLineResponse
// @Router       /api/telephony/{id} [get]
func (h *TelephonyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar línea
// @Tags         telephony
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la línea"
// @Param        body  body  dto.UpdateTelephonyLineRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TelephonyLineResponse
// @Router       /api/telephony/{id} [put]
func (h *TelephonyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTelephonyLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea
// @Tags         telephony
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Router       /api/telephony/{id} [delete]
func (h *TelephonyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apportionment godoc
// @Summary      Prorrateo de telefonía por filial
// @Description  Los filtros se aplican antes de agregar. Líneas sin filial van a "Unclassified".
// @Tags         telephony
// @Security     Bearer
// @Produce      json
// @Param        carrier  query  string  false  "CARRIER_A | CARRIER_B | MANUAL | ALL"
// @Param        month    query  string  false  "Mes de referencia YYYY-MM"
// @Success      200  {object}  dto.ApportionmentResponse
// @Router       /api/telephony/apportionment [get]
func (h *TelephonyHandler) Apportionment(c *fiber.Ctx) error {
	f, err := usecase.ParseTelephonyFilter(c.Query("carrier"), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Apportion(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
