package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/application/analytics"
	"github.com/jhoicas/Conciliacion-api/internal/application/billing"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/mocks"
)

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &v
}

// dashboardWith arma el DashboardUseCase real sobre repos mock.
func dashboardWith(contracts []*entity.Contract, invoices []*entity.Invoice) *analytics.DashboardUseCase {
	cr := &mocks.ContractRepo{}
	ir := &mocks.InvoiceRepo{}
	tr := &mocks.TelephonyRepo{}
	cr.On("List", mock.Anything).Return(contracts, nil)
	ir.On("List", mock.Anything, mock.Anything).Return(invoices, nil)
	tr.On("List", mock.Anything, mock.Anything).Return([]*entity.TelephonyLine{}, nil)
	return analytics.NewDashboardUseCase(cr, ir, tr, nil, zerolog.Nop())
}

func TestBuildReport_OrdenaPorContratoYMarcaHuerfanas(t *testing.T) {
	zeta := &entity.Contract{ID: "c-z", Name: "Zeta", TotalValue: d("600"), DurationMonths: 6}
	dash := dashboardWith(
		[]*entity.Contract{zeta, contractA()},
		[]*entity.Invoice{
			invoice("i-1", "c-z", "100", entity.InvoiceStatusPaid),
			invoice("i-2", "c-a", "101", entity.InvoiceStatusPending),
			invoice("i-3", "c-x", "10", entity.InvoiceStatusPending),
		},
	)
	uc := billing.NewReportUseCase(dash, &mocks.ReportGenerator{}, zerolog.Nop())

	month := entity.ReferenceMonth{Year: 2026, Month: 9}
	report, err := uc.BuildReport(context.Background(), month)
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)

	// la huérfana no tiene nombre de contrato y queda primera
	assert.True(t, report.Rows[0].Orphan)
	assert.Equal(t, "Link Matriz", report.Rows[1].ContractName)
	require.NotNil(t, report.Rows[1].Reconciliation)
	assert.False(t, report.Rows[1].Reconciliation.Divergent)
	assert.Equal(t, "Zeta", report.Rows[2].ContractName)
	assert.True(t, d("200").Equal(report.Summary.ForecastMonthly))
	assert.Equal(t, month, report.ReferenceMonth)
}

func TestBuildReport_MesObligatorio(t *testing.T) {
	uc := billing.NewReportUseCase(dashboardWith(nil, nil), &mocks.ReportGenerator{}, zerolog.Nop())

	_, err := uc.BuildReport(context.Background(), entity.ReferenceMonth{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReconciliationPDF_DelegaAlGenerador(t *testing.T) {
	gen := &mocks.ReportGenerator{}
	gen.On("GenerateReconciliationReport", mock.Anything, mock.MatchedBy(func(r *ports.ReconciliationReport) bool {
		return len(r.Rows) == 1
	})).Return([]byte("%PDF-1.4"), nil)
	dash := dashboardWith([]*entity.Contract{contractA()}, []*entity.Invoice{invoice("i-1", "c-a", "100", entity.InvoiceStatusPaid)})

	pdf, err := billing.NewReportUseCase(dash, gen, zerolog.Nop()).Reconciliation(context.Background(), entity.ReferenceMonth{Year: 2026, Month: 9})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	gen.AssertExpectations(t)
}
