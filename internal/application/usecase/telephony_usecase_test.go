package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/application/usecase"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
	"github.com/jhoicas/Conciliacion-api/internal/mocks"
)

func newTelephonyUC() (*usecase.TelephonyUseCase, *mocks.TelephonyRepo, *mocks.AuditRepo, *mocks.TxRunner) {
	repo := &mocks.TelephonyRepo{}
	audit := &mocks.AuditRepo{}
	tx := &mocks.TxRunner{Repos: ports.TxRepos{Lines: repo, Audit: audit}}
	return usecase.NewTelephonyUseCase(repo, tx, ports.NoopMetrics{}, zerolog.Nop()), repo, audit, tx
}

func TestParseTelephonyFilter(t *testing.T) {
	f, err := usecase.ParseTelephonyFilter("ALL", "")
	require.NoError(t, err)
	assert.Equal(t, repository.TelephonyFilter{}, f, "ALL no filtra")

	f, err = usecase.ParseTelephonyFilter("carrier_a", "2026-09")
	require.NoError(t, err)
	assert.Equal(t, entity.CarrierA, f.Carrier)
	assert.Equal(t, "2026-09", f.ReferenceMonth.String())

	_, err = usecase.ParseTelephonyFilter("OTRA", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = usecase.ParseTelephonyFilter("", "09-2026")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTelephonyApportion_FiltraAntesDeAgregar(t *testing.T) {
	uc, repo, _, _ := newTelephonyUC()
	filter := repository.TelephonyFilter{Carrier: entity.CarrierA}
	repo.On("List", mock.Anything, filter).Return([]*entity.TelephonyLine{
		{ID: "1", Branch: "A", MonthlyValue: decimal.RequireFromString("10"), Carrier: entity.CarrierA},
		{ID: "2", Branch: "A", MonthlyValue: decimal.RequireFromString("5"), Carrier: entity.CarrierA},
		{ID: "3", Branch: "", MonthlyValue: decimal.RequireFromString("3"), Carrier: entity.CarrierA},
	}, nil)

	out, err := uc.Apportion(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, "CARRIER_A", out.Carrier)
	require.Len(t, out.Branches, 2)
	assert.Equal(t, "A", out.Branches[0].Branch)
	assert.True(t, decimal.NewFromInt(15).Equal(out.Branches[0].Total))
	assert.Equal(t, "R$ 15,00", out.Branches[0].Display)
	assert.Equal(t, "Unclassified", out.Branches[1].Branch)
	assert.True(t, decimal.NewFromInt(18).Equal(out.Total))
	assert.Empty(t, out.Issues)
	repo.AssertExpectations(t)
}

func TestTelephonyCreate_OperadoraPorDefectoManual(t *testing.T) {
	uc, repo, audit, _ := newTelephonyUC()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.TelephonyLine) bool {
		return l.Carrier == entity.CarrierManual && l.ReferenceMonth.String() == "2026-09"
	})).Return(nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Create(context.Background(), "ana", dto.CreateTelephonyLineRequest{
		PhoneNumber:    "(11) 4000-0000",
		MonthlyValue:   decimal.RequireFromString("89.90"),
		ReferenceMonth: "2026-09",
		Branch:         "Matriz",
	})
	require.NoError(t, err)
	assert.Equal(t, "MANUAL", out.Carrier)
	repo.AssertExpectations(t)
}

func TestTelephonyCreate_ValorNegativo(t *testing.T) {
	uc, _, _, tx := newTelephonyUC()

	_, err := uc.Create(context.Background(), "ana", dto.CreateTelephonyLineRequest{
		PhoneNumber:  "123",
		MonthlyValue: decimal.RequireFromString("-1"),
	})
	assert.True(t, errors.Is(err, domain.ErrMalformedMonetaryValue))
	assert.Equal(t, 0, tx.Calls)
}

func TestTelephonyUpdate_CambiaFilial(t *testing.T) {
	uc, repo, audit, _ := newTelephonyUC()
	repo.On("GetByID", mock.Anything, "l-1").Return(&entity.TelephonyLine{
		ID: "l-1", PhoneNumber: "123", MonthlyValue: decimal.NewFromInt(50), Carrier: entity.CarrierB,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(l *entity.TelephonyLine) bool { return l.Branch == "Sul" })).Return(nil)
	audit.On("Append", mock.Anything, mock.MatchedBy(func(e *entity.AuditEntry) bool {
		return e.Action == entity.AuditActionUpdate && e.TargetID == "l-1"
	})).Return(nil)

	branch := "Sul"
	out, err := uc.Update(context.Background(), "ana", "l-1", dto.UpdateTelephonyLineRequest{Branch: &branch})
	require.NoError(t, err)
	assert.Equal(t, "Sul", out.Branch)
	repo.AssertExpectations(t)
	audit.AssertExpectations(t)
}
