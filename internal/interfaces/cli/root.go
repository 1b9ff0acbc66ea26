// Package cli implementa el comando conciliador: resumen, prorrateo, reporte,
// vigilar y token sobre los mismos casos de uso que la API.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
	"github.com/jhoicas/Conciliacion-api/pkg/config"
)

var version = "1.0.0"

// SummaryService resumen financiero de un mes.
type SummaryService interface {
	GetSummary(ctx context.Context, month entity.ReferenceMonth) (*dto.FinancialSummaryDTO, error)
}

// ApportionmentService prorrateo de telefonía por filial.
type ApportionmentService interface {
	Apportion(ctx context.Context, f repository.TelephonyFilter) (*dto.ApportionmentResponse, error)
}

// ReportService reporte PDF de conciliación.
type ReportService interface {
	Reconciliation(ctx context.Context, month entity.ReferenceMonth) ([]byte, error)
}

// Services lo que necesitan los comandos que leen la base.
type Services struct {
	Summary   SummaryService
	Telephony ApportionmentService
	Reports   ReportService
}

// Opener abre los servicios bajo demanda; close libera las conexiones.
type Opener func(ctx context.Context) (svc *Services, close func(), err error)

// App dependencias del CLI.
type App struct {
	Config *config.Config
	Open   Opener
	Log    zerolog.Logger
	Out    io.Writer // nil = stdout
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// NewRootCmd arma el árbol de comandos.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "conciliador",
		Short: "Conciliación de facturas de contratos y prorrateo de telefonía",
		Long: `conciliador consulta la misma base que la API de conciliación.

Variables de entorno: DATABASE_URL (o DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME),
JWT_SECRET, WATCH_INTERVAL_SECONDS. Se lee .env si existe.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.out())

	root.AddCommand(
		newSummaryCmd(app),
		newApportionmentCmd(app),
		newReportCmd(app),
		newWatchCmd(app),
		newTokenCmd(app),
	)
	return root
}

// withServices abre los servicios, ejecuta fn y los cierra.
func (a *App) withServices(ctx context.Context, fn func(*Services) error) error {
	svc, closeFn, err := a.Open(ctx)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(svc)
}
