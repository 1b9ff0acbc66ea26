package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

func newWatchCmd(app *App) *cobra.Command {
	var (
		month    string
		interval time.Duration
		times    int
	)
	cmd := &cobra.Command{
		Use:   "vigilar",
		Short: "Recalcula el resumen periódicamente hasta Ctrl+C",
		Example: `  conciliador vigilar --mes 2026-09
  conciliador vigilar --intervalo 30s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = app.Config.Watch.Interval()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.withServices(ctx, func(svc *Services) error {
				return app.watch(ctx, cmd, svc, m, interval, times)
			})
		},
	}
	cmd.Flags().StringVar(&month, "mes", "", "Mes de referencia YYYY-MM")
	cmd.Flags().DurationVar(&interval, "intervalo", 0, "Intervalo entre cálculos (default WATCH_INTERVAL_SECONDS)")
	cmd.Flags().IntVar(&times, "veces", 0, "Cantidad de cálculos antes de salir (0 = sin límite)")
	return cmd
}

// watch imprime un resumen en cada tick. Un error de cálculo se loguea y no corta el ciclo.
func (a *App) watch(ctx context.Context, cmd *cobra.Command, svc *Services, m entity.ReferenceMonth, interval time.Duration, times int) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := a.Log.With().Str("component", "vigilar").Logger()
	log.Info().Dur("interval", interval).Str("month", m.String()).Msg("vigilando resumen")

	for n := 1; ; n++ {
		s, err := svc.Summary.GetSummary(ctx, m)
		if err != nil {
			log.Error().Err(err).Msg("resumen")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "── %s ──\n", time.Now().Format("15:04:05"))
			if err := writeSummary(cmd.OutOrStdout(), s); err != nil {
				return err
			}
		}
		if times > 0 && n >= times {
			return nil
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("vigilancia detenida")
			return nil
		case <-ticker.C:
		}
	}
}
