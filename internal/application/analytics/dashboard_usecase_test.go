package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/application/analytics"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
	"github.com/jhoicas/Conciliacion-api/internal/mocks"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var september = entity.ReferenceMonth{Year: 2026, Month: 9}

func TestGetSummary_TotalesDelMes(t *testing.T) {
	cr := &mocks.ContractRepo{}
	ir := &mocks.InvoiceRepo{}
	tr := &mocks.TelephonyRepo{}
	cr.On("List", mock.Anything).Return([]*entity.Contract{
		{ID: "c-1", Name: "Link", TotalValue: d("1200"), DurationMonths: 12},
		{ID: "c-2", Name: "ERP", TotalValue: d("2400"), DurationMonths: 12},
	}, nil)
	ir.On("List", mock.Anything, repository.InvoiceFilter{ReferenceMonth: september}).Return([]*entity.Invoice{
		{ID: "i-1", ContractID: "c-1", ReferenceMonth: september, OriginalAmount: d("100"), Status: entity.InvoiceStatusPaid},
		{ID: "i-2", ContractID: "c-2", ReferenceMonth: september, OriginalAmount: d("250"), Status: entity.InvoiceStatusPending},
		{ID: "i-3", ContractID: "c-9", ReferenceMonth: september, OriginalAmount: d("999"), Status: entity.InvoiceStatusPending},
	}, nil)
	tr.On("List", mock.Anything, repository.TelephonyFilter{ReferenceMonth: september}).Return([]*entity.TelephonyLine{
		{ID: "l-1", Branch: "Matriz", MonthlyValue: d("40.10")},
		{ID: "l-2", Branch: "Matriz", MonthlyValue: d("9.90")},
	}, nil)

	out, err := analytics.NewDashboardUseCase(cr, ir, tr, nil, zerolog.Nop()).GetSummary(context.Background(), september)
	require.NoError(t, err)

	assert.Equal(t, "2026-09", out.ReferenceMonth)
	assert.Equal(t, "Septiembre 2026", out.DateLabel)
	assert.True(t, d("300").Equal(out.ForecastMonthly))
	assert.True(t, d("100").Equal(out.RealizedTotal))
	assert.True(t, d("250").Equal(out.PendingTotal))
	assert.True(t, d("350").Equal(out.ReconciledTotal))
	assert.True(t, d("50").Equal(out.TelephonyTotal))
	assert.Equal(t, 2, out.ContractsInForce)
	assert.Equal(t, 1, out.DivergentCount, "i-2 difiere en 50 del esperado")
	require.Len(t, out.Orphans, 1)
	assert.Equal(t, "i-3", out.Orphans[0].InvoiceID)
	assert.Empty(t, out.Issues)
}

func TestGetSummary_ErrorDeRepositorio(t *testing.T) {
	cr := &mocks.ContractRepo{}
	ir := &mocks.InvoiceRepo{}
	tr := &mocks.TelephonyRepo{}
	cr.On("List", mock.Anything).Return([]*entity.Contract{}, nil)
	ir.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("conexión rechazada"))
	tr.On("List", mock.Anything, mock.Anything).Return([]*entity.TelephonyLine{}, nil)

	_, err := analytics.NewDashboardUseCase(cr, ir, tr, nil, zerolog.Nop()).GetSummary(context.Background(), september)
	assert.Error(t, err)
}

func TestToSummaryDTO_ListasNuncaNil(t *testing.T) {
	cr := &mocks.ContractRepo{}
	ir := &mocks.InvoiceRepo{}
	tr := &mocks.TelephonyRepo{}
	cr.On("List", mock.Anything).Return([]*entity.Contract{}, nil)
	ir.On("List", mock.Anything, mock.Anything).Return([]*entity.Invoice{}, nil)
	tr.On("List", mock.Anything, mock.Anything).Return([]*entity.TelephonyLine{}, nil)

	out, err := analytics.NewDashboardUseCase(cr, ir, tr, nil, zerolog.Nop()).GetSummary(context.Background(), entity.ReferenceMonth{})
	require.NoError(t, err)
	assert.NotNil(t, out.Orphans)
	assert.NotNil(t, out.Issues)
	assert.True(t, out.ForecastMonthly.IsZero())
}

func TestToSummaryDTO_HuerfanaApareceUnaVez(t *testing.T) {
	contracts := []*entity.Contract{{ID: "c-1", TotalValue: d("1200"), DurationMonths: 12}}
	invoices := []*entity.Invoice{{ID: "i-x", ContractID: "c-9", OriginalAmount: d("70"), Status: entity.InvoiceStatusPending}}

	out := analytics.ToSummaryDTO(finance.Summarize(contracts, invoices), finance.Apportionment{}, september, "Septiembre 2026")

	require.Len(t, out.Orphans, 1)
	assert.Equal(t, "i-x", out.Orphans[0].InvoiceID)
	for _, is := range out.Issues {
		assert.NotEqual(t, "i-x", is.RecordID)
	}
	assert.Empty(t, out.Issues)
}
