package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
	"github.com/jhoicas/Conciliacion-api/internal/interfaces/cli"
	"github.com/jhoicas/Conciliacion-api/pkg/config"
	pkgjwt "github.com/jhoicas/Conciliacion-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSummary struct{ mock.Mock }

func (f *fakeSummary) GetSummary(ctx context.Context, m entity.ReferenceMonth) (*dto.FinancialSummaryDTO, error) {
	args := f.Called(ctx, m)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FinancialSummaryDTO), args.Error(1)
}

type fakeTelephony struct{ mock.Mock }

func (f *fakeTelephony) Apportion(ctx context.Context, flt repository.TelephonyFilter) (*dto.ApportionmentResponse, error) {
	args := f.Called(ctx, flt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApportionmentResponse), args.Error(1)
}

type fakeReports struct{ mock.Mock }

func (f *fakeReports) Reconciliation(ctx context.Context, m entity.ReferenceMonth) ([]byte, error) {
	args := f.Called(ctx, m)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type harness struct {
	summary   *fakeSummary
	telephony *fakeTelephony
	reports   *fakeReports
	opened    int
	closed    int
	out       *bytes.Buffer
	app       *cli.App
}

func newHarness() *harness {
	h := &harness{
		summary:   &fakeSummary{},
		telephony: &fakeTelephony{},
		reports:   &fakeReports{},
		out:       &bytes.Buffer{},
	}
	h.app = &cli.App{
		Config: &config.Config{
			JWT:   config.JWTConfig{Secret: "cli-secret", Expiration: 60, Issuer: "conciliacion-test"},
			Watch: config.WatchConfig{IntervalSeconds: 60},
		},
		Log: zerolog.Nop(),
		Out: h.out,
		Open: func(context.Context) (*cli.Services, func(), error) {
			h.opened++
			return &cli.Services{Summary: h.summary, Telephony: h.telephony, Reports: h.reports},
				func() { h.closed++ }, nil
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	root := cli.NewRootCmd(h.app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func sept() entity.ReferenceMonth { return entity.ReferenceMonth{Year: 2026, Month: 9} }

func summary() *dto.FinancialSummaryDTO {
	return &dto.FinancialSummaryDTO{
		ReferenceMonth:  "2026-09",
		DateLabel:       "Septiembre 2026",
		ForecastMonthly: decimal.NewFromInt(300),
		RealizedTotal:   decimal.NewFromInt(100),
		PendingTotal:    decimal.NewFromInt(250),
		ReconciledTotal: decimal.NewFromInt(350),
		PaidCount:       1,
		PendingCount:    2,
		Orphans: []dto.OrphanInvoiceDTO{
			{InvoiceID: "i-9", ContractID: "c-x", Status: "PENDING", FinalAmount: decimal.NewFromInt(50)},
		},
		Issues: []dto.IssueDTO{},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestResumen_Texto(t *testing.T) {
	h := newHarness()
	h.summary.On("GetSummary", mock.Anything, sept()).Return(summary(), nil)

	require.NoError(t, h.run("resumen", "--mes", "2026-09"))

	out := h.out.String()
	assert.Contains(t, out, "Septiembre 2026")
	assert.Contains(t, out, "R$ 300,00")
	assert.Contains(t, out, "R$ 350,00")
	assert.Contains(t, out, "factura huérfana i-9")
	assert.Equal(t, 1, h.closed)
}

func TestResumen_JSON(t *testing.T) {
	h := newHarness()
	h.summary.On("GetSummary", mock.Anything, entity.ReferenceMonth{}).Return(summary(), nil)

	require.NoError(t, h.run("resumen", "--json"))

	var got dto.FinancialSummaryDTO
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.True(t, decimal.NewFromInt(250).Equal(got.PendingTotal))
	assert.Len(t, got.Orphans, 1)
}

func TestResumen_MesInvalidoNoAbreConexion(t *testing.T) {
	h := newHarness()
	err := h.run("resumen", "--mes", "2026-13")
	assert.Error(t, err)
	assert.Equal(t, 0, h.opened)
}

func TestResumen_ErrorDelServicio(t *testing.T) {
	h := newHarness()
	h.summary.On("GetSummary", mock.Anything, sept()).Return(nil, errors.New("db caída"))

	err := h.run("resumen", "--mes", "2026-09")
	assert.EqualError(t, err, "db caída")
	assert.Equal(t, 1, h.closed)
}

// ──────────────────────────────────────────────────────────────────────────────
// prorrateo
// ──────────────────────────────────────────────────────────────────────────────

func TestProrrateo_PorOperadora(t *testing.T) {
	h := newHarness()
	h.telephony.On("Apportion", mock.Anything, repository.TelephonyFilter{Carrier: entity.CarrierA}).Return(&dto.ApportionmentResponse{
		Carrier: "CARRIER_A",
		Branches: []dto.BranchTotalDTO{
			{Branch: "Matriz", Total: decimal.NewFromInt(15), Lines: 2, Display: "R$ 15,00"},
			{Branch: "Unclassified", Total: decimal.NewFromInt(3), Lines: 1, Display: "R$ 3,00"},
		},
		Total:  decimal.NewFromInt(18),
		Issues: []dto.IssueDTO{},
	}, nil)

	require.NoError(t, h.run("prorrateo", "--operadora", "carrier_a"))

	out := h.out.String()
	assert.Contains(t, out, "Matriz")
	assert.Contains(t, out, "Unclassified")
	assert.Contains(t, out, "R$ 18,00")
	h.telephony.AssertExpectations(t)
}

func TestProrrateo_OperadoraDesconocida(t *testing.T) {
	h := newHarness()
	assert.Error(t, h.run("prorrateo", "--operadora", "OTRA"))
	assert.Equal(t, 0, h.opened)
}

// ──────────────────────────────────────────────────────────────────────────────
// reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestReporte_EscribeArchivo(t *testing.T) {
	h := newHarness()
	h.reports.On("Reconciliation", mock.Anything, sept()).Return([]byte("%PDF-1.4 fake"), nil)
	path := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, h.run("reporte", "--mes", "2026-09", "-o", path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(b))
	assert.Contains(t, h.out.String(), path)
}

func TestReporte_SinMes(t *testing.T) {
	h := newHarness()
	assert.Error(t, h.run("reporte"))
	assert.Equal(t, 0, h.opened)
}

// ──────────────────────────────────────────────────────────────────────────────
// vigilar
// ──────────────────────────────────────────────────────────────────────────────

func TestVigilar_RecalculaHastaLimite(t *testing.T) {
	h := newHarness()
	h.summary.On("GetSummary", mock.Anything, sept()).Return(summary(), nil)

	require.NoError(t, h.run("vigilar", "--mes", "2026-09", "--intervalo", "5ms", "--veces", "3"))

	h.summary.AssertNumberOfCalls(t, "GetSummary", 3)
	assert.Equal(t, 1, h.opened)
}

func TestVigilar_ErrorNoCortaElCiclo(t *testing.T) {
	h := newHarness()
	h.summary.On("GetSummary", mock.Anything, sept()).Return(nil, errors.New("timeout")).Once()
	h.summary.On("GetSummary", mock.Anything, sept()).Return(summary(), nil)

	require.NoError(t, h.run("vigilar", "--mes", "2026-09", "--intervalo", "5ms", "--veces", "2"))
	assert.Contains(t, h.out.String(), "Septiembre 2026")
}

// ──────────────────────────────────────────────────────────────────────────────
// token
// ──────────────────────────────────────────────────────────────────────────────

func TestToken_EmiteJWTValido(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run("token", "--usuario", "ana.souza", "--rol", "tercerizado"))

	id, err := pkgjwt.Parse("cli-secret", string(bytes.TrimSpace(h.out.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, "ana.souza", id.Username)
	assert.Equal(t, "ana.souza", id.UserID)
	assert.Equal(t, "tercerizado", id.Role)
	assert.Equal(t, 0, h.opened, "token no necesita la base")
}

func TestToken_RolInvalido(t *testing.T) {
	h := newHarness()
	assert.Error(t, h.run("token", "--usuario", "ana", "--rol", "auditor_externo"))
}

func TestToken_SinSecret(t *testing.T) {
	h := newHarness()
	h.app.Config.JWT.Secret = ""
	assert.Error(t, h.run("token", "--usuario", "ana"))
}
