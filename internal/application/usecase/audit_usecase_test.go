package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/mocks"
)

func TestAuditRecent_LimitaTamano(t *testing.T) {
	repo := &mocks.AuditRepo{}
	repo.On("ListRecent", mock.Anything, 500).Return([]*entity.AuditEntry{{ID: "a"}}, nil)
	repo.On("ListRecent", mock.Anything, 100).Return([]*entity.AuditEntry{}, nil)
	uc := usecase.NewAuditUseCase(repo)

	out, err := uc.Recent(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)

	out, err = uc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	repo.AssertExpectations(t)
}

func TestAuditInvoiceHistory(t *testing.T) {
	repo := &mocks.AuditRepo{}
	paid := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	repo.On("ListStatusEvents", mock.Anything, "i-1").Return([]*entity.StatusEvent{
		{ID: "01A", InvoiceID: "i-1", FromStatus: entity.InvoiceStatusPending, ToStatus: entity.InvoiceStatusPaid, Incomplete: true},
		{ID: "01B", InvoiceID: "i-1", FromStatus: entity.InvoiceStatusPaid, ToStatus: entity.InvoiceStatusPaid, PaymentDate: &paid},
	}, nil)

	out, err := usecase.NewAuditUseCase(repo).InvoiceHistory(context.Background(), "i-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Incomplete)
	require.NotNil(t, out.Items[1].PaymentDate)
	assert.Equal(t, "2026-09-30", *out.Items[1].PaymentDate)
}

func TestAuditHistory_SoloObjetivosDeNegocio(t *testing.T) {
	repo := &mocks.AuditRepo{}
	targets := []string{entity.AuditTargetContract, entity.AuditTargetInvoice, entity.AuditTargetTelephonyLine}
	repo.On("ListByTargets", mock.Anything, targets, 100).Return([]*entity.AuditEntry{
		{ID: "a2", Actor: "ana", Action: entity.AuditActionCancel, Target: entity.AuditTargetInvoice, TargetID: "i-1"},
		{ID: "a1", Actor: "ana", Action: entity.AuditActionUpdate, Target: entity.AuditTargetContract, TargetID: "c-1"},
	}, nil)

	out, err := usecase.NewAuditUseCase(repo).History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "CANCEL", out.Items[0].Action)
	assert.Equal(t, "contract", out.Items[1].Target)
	repo.AssertExpectations(t)
}
