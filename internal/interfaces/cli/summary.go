package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/pkg/money"
)

func newSummaryCmd(app *App) *cobra.Command {
	var (
		month  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "resumen",
		Short: "Resumen financiero del mes (pronóstico, realizado, pendiente)",
		Example: `  conciliador resumen --mes 2026-09
  conciliador resumen --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			return app.withServices(cmd.Context(), func(svc *Services) error {
				s, err := svc.Summary.GetSummary(cmd.Context(), m)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), s)
				}
				return writeSummary(cmd.OutOrStdout(), s)
			})
		},
	}
	cmd.Flags().StringVar(&month, "mes", "", "Mes de referencia YYYY-MM (vacío = todas las facturas)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Salida JSON")
	return cmd
}

func parseMonthFlag(s string) (entity.ReferenceMonth, error) {
	if s == "" {
		return entity.ReferenceMonth{}, nil
	}
	m, err := entity.ParseReferenceMonth(s)
	if err != nil {
		return entity.ReferenceMonth{}, fmt.Errorf("--mes: %w", err)
	}
	return m, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummary(w io.Writer, s *dto.FinancialSummaryDTO) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Período\t%s\n", s.DateLabel)
	fmt.Fprintf(tw, "Pronóstico mensual\t%s\n", money.Format(s.ForecastMonthly))
	fmt.Fprintf(tw, "Realizado\t%s\t(%d pagas)\n", money.Format(s.RealizedTotal), s.PaidCount)
	fmt.Fprintf(tw, "Pendiente\t%s\t(%d pendientes)\n", money.Format(s.PendingTotal), s.PendingCount)
	fmt.Fprintf(tw, "Conciliado\t%s\n", money.Format(s.ReconciledTotal))
	fmt.Fprintf(tw, "Telefonía\t%s\n", money.Format(s.TelephonyTotal))
	fmt.Fprintf(tw, "Contratos vigentes\t%d\n", s.ContractsInForce)
	fmt.Fprintf(tw, "Divergentes\t%d\n", s.DivergentCount)
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, o := range s.Orphans {
		fmt.Fprintf(w, "! factura huérfana %s (contrato %s, %s)\n", o.InvoiceID, o.ContractID, money.Format(o.FinalAmount))
	}
	for _, is := range s.Issues {
		fmt.Fprintf(w, "! %s %s %s: %s\n", is.Kind, is.Record, is.RecordID, is.Message)
	}
	return nil
}
