package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/application/billing"
	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/mocks"
)

// recordingMetrics cuenta transiciones para verificar la instrumentación.
type recordingMetrics struct {
	ports.NoopMetrics
	transitions []entity.InvoiceStatus
	incomplete  int
}

func (m *recordingMetrics) StatusTransition(to entity.InvoiceStatus, incomplete bool) {
	m.transitions = append(m.transitions, to)
	if incomplete {
		m.incomplete++
	}
}

type statusFixture struct {
	invoices  *mocks.InvoiceRepo
	contracts *mocks.ContractRepo
	sink      *mocks.AuditSink
	metrics   *recordingMetrics
	uc        *billing.StatusUseCase
}

func newStatusFixture() *statusFixture {
	f := &statusFixture{
		invoices:  &mocks.InvoiceRepo{},
		contracts: &mocks.ContractRepo{},
		sink:      &mocks.AuditSink{},
		metrics:   &recordingMetrics{},
	}
	f.uc = billing.NewStatusUseCase(f.invoices, f.contracts, f.sink, f.metrics, zerolog.Nop())
	return f
}

func strPtr(s string) *string { return &s }

func TestChangeStatus_PagadaSinFechaQuedaIncompleta(t *testing.T) {
	f := newStatusFixture()
	f.invoices.On("GetByID", mock.Anything, "i-1").Return(invoice("i-1", "c-a", "100", entity.InvoiceStatusPending), nil)
	f.invoices.On("ApplyStatus", mock.Anything, mock.MatchedBy(func(ins finance.InvoiceUpdateInstruction) bool {
		return ins.Status == entity.InvoiceStatusPaid && ins.Incomplete && ins.PaymentDate == nil && ins.Event.ID != ""
	})).Return(nil)
	f.sink.On("Publish", mock.Anything, mock.MatchedBy(func(ev entity.StatusEvent) bool {
		return ev.Incomplete && ev.Actor == "ana" && ev.FromStatus == entity.InvoiceStatusPending
	})).Return()
	f.contracts.On("GetByID", mock.Anything, "c-a").Return(contractA(), nil)

	out, err := f.uc.ChangeStatus(context.Background(), "ana", "i-1", dto.ChangeStatusRequest{Status: "PAID"})
	require.NoError(t, err)

	assert.True(t, out.Incomplete)
	assert.NotEmpty(t, out.Warning)
	assert.Equal(t, "PAID", out.Invoice.Status)
	assert.Nil(t, out.Invoice.PaymentDate)
	_, perr := ulid.Parse(out.EventID)
	assert.NoError(t, perr, "event id es un ULID")
	assert.Equal(t, []entity.InvoiceStatus{entity.InvoiceStatusPaid}, f.metrics.transitions)
	assert.Equal(t, 1, f.metrics.incomplete)
	f.sink.AssertExpectations(t)
}

func TestChangeStatus_PagadaConFechaYNotas(t *testing.T) {
	f := newStatusFixture()
	f.invoices.On("GetByID", mock.Anything, "i-1").Return(invoice("i-1", "c-a", "100", entity.InvoiceStatusSentVendorA), nil)
	f.invoices.On("ApplyStatus", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("Publish", mock.Anything, mock.Anything).Return()
	f.contracts.On("GetByID", mock.Anything, "c-a").Return(contractA(), nil)

	out, err := f.uc.ChangeStatus(context.Background(), "ana", "i-1", dto.ChangeStatusRequest{
		Status:      "paid",
		PaymentDate: strPtr("2026-09-28"),
		Notes:       strPtr("pago confirmado"),
	})
	require.NoError(t, err)
	assert.False(t, out.Incomplete)
	assert.Empty(t, out.Warning)
	require.NotNil(t, out.Invoice.PaymentDate)
	assert.Equal(t, "2026-09-28", *out.Invoice.PaymentDate)
	assert.Equal(t, "pago confirmado", out.Invoice.Notes)
}

func TestChangeStatus_EstadoInvalidoNoConsultaNada(t *testing.T) {
	f := newStatusFixture()

	_, err := f.uc.ChangeStatus(context.Background(), "ana", "i-1", dto.ChangeStatusRequest{Status: "ARCHIVED"})
	assert.True(t, errors.Is(err, domain.ErrInvalidStatus))
	f.invoices.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChangeStatus_FechaMalFormada(t *testing.T) {
	f := newStatusFixture()

	_, err := f.uc.ChangeStatus(context.Background(), "ana", "i-1", dto.ChangeStatusRequest{Status: "PAID", PaymentDate: strPtr("28/09/2026")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestChangeStatus_FallaPersistenciaNoPublica(t *testing.T) {
	f := newStatusFixture()
	f.invoices.On("GetByID", mock.Anything, "i-1").Return(invoice("i-1", "c-a", "100", entity.InvoiceStatusPending), nil)
	f.invoices.On("ApplyStatus", mock.Anything, mock.Anything).Return(errors.New("deadlock"))

	_, err := f.uc.ChangeStatus(context.Background(), "ana", "i-1", dto.ChangeStatusRequest{Status: "SENT_VENDOR_B"})
	assert.Error(t, err)
	f.sink.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Empty(t, f.metrics.transitions)
}

func TestChangeStatus_RevertirPagadaLimpiaFecha(t *testing.T) {
	f := newStatusFixture()
	paid := invoice("i-1", "c-a", "100", entity.InvoiceStatusPaid)
	date := mustDate(t, "2026-09-01")
	paid.PaymentDate = date
	f.invoices.On("GetByID", mock.Anything, "i-1").Return(paid, nil)
	f.invoices.On("ApplyStatus", mock.Anything, mock.MatchedBy(func(ins finance.InvoiceUpdateInstruction) bool {
		return ins.ClearPaymentDate
	})).Return(nil)
	f.sink.On("Publish", mock.Anything, mock.Anything).Return()
	f.contracts.On("GetByID", mock.Anything, "c-a").Return(contractA(), nil)

	out, err := f.uc.ChangeStatus(context.Background(), "ana", "i-1", dto.ChangeStatusRequest{Status: "PENDING"})
	require.NoError(t, err)
	assert.Nil(t, out.Invoice.PaymentDate)
	assert.Equal(t, "PENDING", out.Invoice.Status)
}

func TestChangeStatus_FacturaInexistente(t *testing.T) {
	f := newStatusFixture()
	f.invoices.On("GetByID", mock.Anything, "x").Return(nil, nil)

	_, err := f.uc.ChangeStatus(context.Background(), "ana", "x", dto.ChangeStatusRequest{Status: "PAID"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
