package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Conciliacion-api/internal/application/analytics"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// DashboardHandler maneja los endpoints del dashboard financiero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen financiero
// @Description  Pronóstico mensual, realizado, pendiente, divergentes, huérfanas y registros excluidos.
// @Description  Sin month se consideran todas las facturas. Se recalcula en cada llamada.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "Mes de referencia YYYY-MM"
// @Success      200  {object}  dto.FinancialSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	month, err := monthQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	summary, err := h.uc.GetSummary(c.Context(), month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// monthQuery lee ?month=YYYY-MM; vacío = mes cero.
func monthQuery(c *fiber.Ctx) (entity.ReferenceMonth, error) {
	m := c.Query("month")
	if m == "" {
		return entity.ReferenceMonth{}, nil
	}
	month, err := entity.ParseReferenceMonth(m)
	if err != nil {
		return entity.ReferenceMonth{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return month, nil
}
