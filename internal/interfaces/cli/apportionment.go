package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
	"github.com/jhoicas/Conciliacion-api/pkg/money"
)

func newApportionmentCmd(app *App) *cobra.Command {
	var (
		carrier string
		month   string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:     "prorrateo",
		Short:   "Total de telefonía por filial",
		Example: `  conciliador prorrateo --operadora CARRIER_A --mes 2026-09`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := usecase.ParseTelephonyFilter(carrier, month)
			if err != nil {
				return err
			}
			return app.withServices(cmd.Context(), func(svc *Services) error {
				out, err := svc.Telephony.Apportion(cmd.Context(), f)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				return writeApportionment(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&carrier, "operadora", "ALL", "CARRIER_A | CARRIER_B | MANUAL | ALL")
	cmd.Flags().StringVar(&month, "mes", "", "Mes de referencia YYYY-MM")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Salida JSON")
	return cmd
}

func writeApportionment(w io.Writer, a *dto.ApportionmentResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Filial\tLíneas\tTotal\t")
	for _, b := range a.Branches {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", b.Branch, b.Lines, b.Display)
	}
	fmt.Fprintf(tw, "Total\t\t%s\t\n", money.Format(a.Total))
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, is := range a.Issues {
		fmt.Fprintf(w, "! línea %s excluida: %s\n", is.RecordID, is.Message)
	}
	return nil
}
