package finance_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Divergencia contra el costo mensual esperado
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_SinDivergencia(t *testing.T) {
	rec, err := finance.Reconcile(invoiceFor("i-b", "c-a", "100.00", entity.InvoiceStatusPending), contractA())
	require.NoError(t, err)

	assertDec(t, "100.00", rec.FinalAmount)
	assertDec(t, "100.00", rec.ExpectedAmount)
	assertDec(t, "0", rec.Delta)
	assert.False(t, rec.Divergent)
	assert.Equal(t, "i-b", rec.InvoiceID)
	assert.Equal(t, "c-a", rec.ContractID)
}

func TestReconcile_DivergenciaCinco(t *testing.T) {
	rec, err := finance.Reconcile(invoiceFor("i-c", "c-a", "105.00", entity.InvoiceStatusPending), contractA())
	require.NoError(t, err)

	assertDec(t, "5.00", rec.Delta)
	assert.True(t, rec.Divergent, "5 > 1.00 debe marcar divergencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

// divergent == |final − esperado| > 1.00; el borde exacto (1.00) no diverge.
func TestReconcile_UmbralDeDivergencia(t *testing.T) {
	cases := []struct {
		original  string
		divergent bool
	}{
		{"101.00", false},
		{"99.00", false},
		{"101.01", true},
		{"98.99", true},
		{"100.50", false},
		{"0", true},
	}
	for _, tc := range cases {
		t.Run(tc.original, func(t *testing.T) {
			rec, err := finance.Reconcile(invoiceFor("i", "c-a", tc.original, entity.InvoiceStatusPending), contractA())
			require.NoError(t, err)
			assert.Equal(t, tc.divergent, rec.Divergent)
			assert.Equal(t, rec.Delta.Abs().GreaterThan(finance.DivergenceThreshold()), rec.Divergent)
		})
	}
}

// finalAmount = original + acréscimo − descuento, independiente de la conciliación.
func TestReconcile_ValorFinalConAjustes(t *testing.T) {
	inv := invoiceFor("i", "c-a", "100.00", entity.InvoiceStatusPending)
	inv.Surcharge = dec("12.30")
	inv.Discount = dec("2.30")

	rec, err := finance.Reconcile(inv, contractA())
	require.NoError(t, err)

	assertDec(t, "110.00", rec.FinalAmount)
	assert.True(t, inv.FinalAmount().Equal(rec.FinalAmount))
	assertDec(t, "10.00", rec.Delta)
	assert.True(t, rec.Divergent)
}

// Un descuento mayor al valor produce un final negativo: el motor no lo recorta.
func TestReconcile_ValorFinalNegativoNoSeRecorta(t *testing.T) {
	inv := invoiceFor("i", "c-a", "10.00", entity.InvoiceStatusPending)
	inv.Discount = dec("15.00")

	rec, err := finance.Reconcile(inv, contractA())
	require.NoError(t, err)
	assertDec(t, "-5.00", rec.FinalAmount)
}

// Idempotencia: dos llamadas con la misma entrada devuelven lo mismo.
func TestReconcile_Idempotente(t *testing.T) {
	inv := invoiceFor("i", "c-a", "133.33", entity.InvoiceStatusPaid)
	c := &entity.Contract{ID: "c-a", TotalValue: dec("1000"), DurationMonths: 7}

	first, err := finance.Reconcile(inv, c)
	require.NoError(t, err)
	second, err := finance.Reconcile(inv, c)
	require.NoError(t, err)

	assert.True(t, first.FinalAmount.Equal(second.FinalAmount))
	assert.True(t, first.ExpectedAmount.Equal(second.ExpectedAmount))
	assert.True(t, first.Delta.Equal(second.Delta))
	assert.Equal(t, first.Divergent, second.Divergent)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_ContratoAusente(t *testing.T) {
	_, err := finance.Reconcile(invoiceFor("i", "c-x", "100", entity.InvoiceStatusPending), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingContractReference))
}

func TestReconcile_ContratoDistinto(t *testing.T) {
	_, err := finance.Reconcile(invoiceFor("i", "c-x", "100", entity.InvoiceStatusPending), contractA())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingContractReference))
}

func TestReconcile_ValorMalFormado(t *testing.T) {
	inv := invoiceFor("i", "c-a", "100", entity.InvoiceStatusPending)
	inv.Surcharge = dec("-1")

	_, err := finance.Reconcile(inv, contractA())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedMonetaryValue))

	var fe *finance.MonetaryFieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "surcharge", fe.Field)
}

func TestReconcile_ContratoConTotalNegativo(t *testing.T) {
	c := contractA()
	c.TotalValue = dec("-1200")

	_, err := finance.Reconcile(invoiceFor("i", "c-a", "100", entity.InvoiceStatusPending), c)
	require.Error(t, err)
	assert.Equal(t, finance.IssueMalformedMonetaryValue, finance.KindOf(err))
}
