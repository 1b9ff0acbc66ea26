package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Conciliacion-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/Conciliacion-api/internal/interfaces/http"
	"github.com/jhoicas/Conciliacion-api/pkg/config"
	"github.com/jhoicas/Conciliacion-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run levanta la API y bloquea hasta que ctx se cancele o el listener falle.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Bool("lock_paid_invoices", cfg.Finance.LockPaidInvoices).
		Bool("nats", cfg.NATS.URL != "").
		Msg("iniciando conciliación")

	deps, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("dependencias: %w", err)
	}
	defer deps.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // el PDF del reporte puede tardar
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Conciliación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContractUC:     deps.Contracts,
		InvoiceUC:      deps.Invoices,
		StatusUC:       deps.Status,
		TelephonyUC:    deps.Telephony,
		DashboardUC:    deps.Dashboard,
		AuditUC:        deps.Audit,
		ReportUC:       deps.Reports,
		MetricsHandler: deps.Metrics.Handler(),
		JWTSecret:      cfg.JWT.Secret,
	})

	listenErr := make(chan error, 1)
	go func() { listenErr <- app.Listen(cfg.HTTP.Addr()) }()

	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
