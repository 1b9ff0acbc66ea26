package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/Conciliacion-api/internal/application/analytics"
	"github.com/jhoicas/Conciliacion-api/internal/application/billing"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ContractUC     *usecase.ContractUseCase
	InvoiceUC      *billing.InvoiceUseCase
	StatusUC       *billing.StatusUseCase
	TelephonyUC    *usecase.TelephonyUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	AuditUC        *usecase.AuditUseCase
	ReportUC       *billing.ReportUseCase
	MetricsHandler nethttp.Handler // nil = sin /metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token con uno de los roles de operador.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(AllRoles...))

	// Contratos
	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Post("/", contractHandler.Create)
	contracts.Get("/", contractHandler.List)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", contractHandler.Update)
	contracts.Put("/:id/cancel", contractHandler.Cancel)
	contracts.Put("/:id/reactivate", contractHandler.Reactivate)
	contracts.Delete("/:id", contractHandler.Delete)

	// Facturas
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.StatusUC, deps.AuditUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Put("/:id/cancel", invoiceHandler.Cancel)
	invoices.Put("/:id/reactivate", invoiceHandler.Reactivate)
	invoices.Put("/:id/status", invoiceHandler.ChangeStatus)
	invoices.Get("/:id/history", invoiceHandler.History)

	// Telefonía (apportionment antes de /:id)
	telephony := protected.Group("/telephony")
	telephonyHandler := NewTelephonyHandler(deps.TelephonyUC)
	telephony.Get("/apportionment", telephonyHandler.Apportionment)
	telephony.Post("/", telephonyHandler.Create)
	telephony.Get("/", telephonyHandler.List)
	telephony.Get("/:id", telephonyHandler.GetByID)
	telephony.Put("/:id", telephonyHandler.Update)
	telephony.Delete("/:id", telephonyHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/reconciliation", reportHandler.Reconciliation)

	// Historial de cambios de negocio (todos los roles) y log completo (solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/history", auditHandler.History)
	protected.Get("/audit", RequireRole(RoleAdmin), auditHandler.Recent)
}
