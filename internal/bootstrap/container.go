// Package bootstrap arma las dependencias compartidas por la API y el CLI.
package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"

	appanalytics "github.com/jhoicas/Conciliacion-api/internal/application/analytics"
	"github.com/jhoicas/Conciliacion-api/internal/application/billing"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/infrastructure/audit"
	"github.com/jhoicas/Conciliacion-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Conciliacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Conciliacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Conciliacion-api/pkg/config"
	"github.com/jhoicas/Conciliacion-api/pkg/logger"
)

// Container casos de uso listos para usar. Close libera pool y conexión NATS.
type Container struct {
	Contracts *usecase.ContractUseCase
	Invoices  *billing.InvoiceUseCase
	Status    *billing.StatusUseCase
	Telephony *usecase.TelephonyUseCase
	Dashboard *appanalytics.DashboardUseCase
	Audit     *usecase.AuditUseCase
	Reports   *billing.ReportUseCase
	Metrics   *metrics.Prometheus

	pool *pgxpool.Pool
	nc   *nats.Conn
}

// New conecta PostgreSQL (y NATS si NATS_URL está definido) y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	contractRepo := postgres.NewContractRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	telephonyRepo := postgres.NewTelephonyRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New(nil)

	// Sink de auditoría: NATS + log, o solo log.
	var sink ports.AuditSink = audit.LogSink{Log: log.Component("audit")}
	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = nats.Connect(cfg.NATS.URL, nats.Name(cfg.App.Name))
		if err != nil {
			// sin NATS seguimos con el log local
			log.Warn().Err(err).Str("url", cfg.NATS.URL).Msg("NATS no disponible, auditoría solo en log")
		} else {
			sink = audit.MultiSink{
				audit.NewNATSPublisher(nc, cfg.NATS.Subject, m, log.Component("nats")),
				sink,
			}
		}
	}

	policy := finance.EditPolicyFor(cfg.Finance.LockPaidInvoices)
	dashboardUC := appanalytics.NewDashboardUseCase(contractRepo, invoiceRepo, telephonyRepo, m, log.Component("dashboard"))

	return &Container{
		Contracts: usecase.NewContractUseCase(contractRepo, txRunner, log.Component("contracts")),
		Invoices:  billing.NewInvoiceUseCase(invoiceRepo, contractRepo, txRunner, policy, log.Component("invoices")),
		Status:    billing.NewStatusUseCase(invoiceRepo, contractRepo, sink, m, log.Component("status")),
		Telephony: usecase.NewTelephonyUseCase(telephonyRepo, txRunner, m, log.Component("telephony")),
		Dashboard: dashboardUC,
		Audit:     usecase.NewAuditUseCase(auditRepo),
		Reports:   billing.NewReportUseCase(dashboardUC, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), log.Component("reports")),
		Metrics:   m,
		pool:      pool,
		nc:        nc,
	}, nil
}

// Close drena NATS y cierra el pool.
func (c *Container) Close() {
	if c.nc != nil {
		_ = c.nc.Drain()
	}
	c.pool.Close()
}
