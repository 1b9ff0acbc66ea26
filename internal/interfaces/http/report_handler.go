package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/billing"
)

// ReportHandler reportes descargables.
type ReportHandler struct {
	uc *billing.ReportUseCase
}

func NewReportHandler(uc *billing.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Reconciliation godoc
// @Summary      Reporte mensual de conciliación (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  string  true  "Mes de referencia YYYY-MM"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/reconciliation [get]
func (h *ReportHandler) Reconciliation(c *fiber.Ctx) error {
	month, err := monthQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.Reconciliation(c.Context(), month)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="conciliacion-%s.pdf"`, month))
	return c.Send(pdf)
}
