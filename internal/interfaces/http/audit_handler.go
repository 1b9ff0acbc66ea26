package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
)

// AuditHandler bitácora de cambios: /audit completo (admin) e /history de negocio.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Recent godoc
// @Summary      Últimos cambios registrados
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas"  default(100)
// @Success      200  {object}  dto.ListResponse[dto.AuditEntryResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de cambios en contratos, facturas y telefonía
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas"  default(100)
// @Success      200  {object}  dto.ListResponse[dto.AuditEntryResponse]
// @Router       /api/history [get]
func (h *AuditHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
