// Package pdf genera el reporte mensual de conciliación con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + mes de referencia │ Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Pronóstico / Realizado / Pendiente / Divergentes  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Contrato | Estado | Esperado | Final | Δ | Marca     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRORRATEO DE TELEFONÍA: Filial | Líneas | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: registros excluidos                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/pkg/money"
)

var _ ports.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author aparece en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateReconciliationReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReconciliationReport(_ context.Context, report *ports.ReconciliationReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conciliação "+report.ReferenceMonth.String(), true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(apportionmentRows(report.Apportionment)...)

	if n := len(report.Summary.Issues) + len(report.Apportionment.Issues); n > 0 || len(report.Summary.Orphans) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(footerRow(len(report.Summary.Orphans), n))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *ports.ReconciliationReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE CONCILIAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mês de referência: "+r.ReferenceMonth.String(), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cuatro bloques con los totales del mes.
func summaryRow(s finance.Summary) core.Row {
	block := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		block("Previsão mensal", money.Format(s.ForecastMonthly)),
		block("Realizado (pago)", money.Format(s.RealizedTotal)),
		block("Pendente", money.Format(s.PendingTotal)),
		block("Divergentes", strconv.Itoa(s.DivergentCount)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Contrato", 4, align.Left),
		h("Status", 2, align.Center),
		h("Esperado", 2, align.Right),
		h("Final", 2, align.Right),
		h("Δ", 1, align.Right),
		h("", 1, align.Center),
	)
}

// tableRows: una fila por factura. Huérfanas y mal formadas salen sin esperado ni delta.
func tableRows(rows []ports.ReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		name := nonEmpty(r.ContractName, r.Invoice.ContractID)
		expected, delta, mark := "—", "—", ""
		markColor := colorGray
		switch {
		case r.Orphan:
			mark = "ÓRFÃ"
			markColor = colorAlert
		case r.Reconciliation == nil:
			mark = "ERRO"
			markColor = colorAlert
		default:
			expected = money.Format(r.Reconciliation.ExpectedAmount)
			delta = money.Format(r.Reconciliation.Delta)
			if r.Reconciliation.Divergent {
				mark = "DIV"
				markColor = colorAlert
			}
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(r.Invoice.Status), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(expected, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.Format(r.Invoice.FinalAmount()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(delta, props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(mark, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: markColor})),
		))
	}
	if len(result) == 0 {
		result = append(result, row.New(8).Add(col.New(12).Add(
			text.New("Sem faturas no período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	return result
}

func apportionmentRows(a finance.Apportionment) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("RATEIO DE TELEFONIA POR FILIAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, b := range a.Branches {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(b.Branch, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(2).Add(text.New(strconv.Itoa(b.Lines)+" linhas", props.Text{Size: 7, Align: align.Right, Top: 1, Color: colorGray})),
			col.New(4).Add(text.New(money.Format(b.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	rows = append(rows, row.New(7).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 2})),
		col.New(4).Add(text.New(money.Format(a.Total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1, Color: colorPrimary,
		})),
	))
	return rows
}

func footerRow(orphans, issues int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("%d fatura(s) sem contrato e %d registro(s) com valores inválidos ficaram fora dos totais.", orphans, issues),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
