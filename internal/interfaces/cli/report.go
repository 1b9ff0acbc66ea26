package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		month  string
		output string
	)
	cmd := &cobra.Command{
		Use:     "reporte",
		Short:   "Genera el PDF de conciliación del mes",
		Example: `  conciliador reporte --mes 2026-09 --salida conciliacion.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month == "" {
				return fmt.Errorf("--mes es requerido")
			}
			m, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("conciliacion-%s.pdf", m)
			}
			return app.withServices(cmd.Context(), func(svc *Services) error {
				pdf, err := svc.Reports.Reconciliation(cmd.Context(), m)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, pdf, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", output, err)
				}
				app.Log.Info().Str("file", output).Int("bytes", len(pdf)).Msg("reporte generado")
				fmt.Fprintln(cmd.OutOrStdout(), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "mes", "", "Mes de referencia YYYY-MM (requerido)")
	cmd.Flags().StringVarP(&output, "salida", "o", "", "Archivo de salida (default conciliacion-<mes>.pdf)")
	return cmd
}
