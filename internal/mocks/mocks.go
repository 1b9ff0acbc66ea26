// Package mocks implementaciones testify/mock de los puertos, para tests de casos de uso y handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

var (
	_ repository.ContractRepository  = (*ContractRepo)(nil)
	_ repository.InvoiceRepository   = (*InvoiceRepo)(nil)
	_ repository.TelephonyRepository = (*TelephonyRepo)(nil)
	_ repository.AuditRepository     = (*AuditRepo)(nil)
	_ ports.AuditSink                = (*AuditSink)(nil)
	_ ports.ReportGenerator          = (*ReportGenerator)(nil)
	_ ports.TxRunner                 = (*TxRunner)(nil)
)

// ── Contratos ─────────────────────────────────────────────────────────────────

type ContractRepo struct{ mock.Mock }

func (m *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Contract)
	return c, args.Error(1)
}

func (m *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Contract)
	return list, args.Error(1)
}

func (m *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ContractRepo) SetCanceledAt(ctx context.Context, id string, at *time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *ContractRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// ── Facturas ──────────────────────────────────────────────────────────────────

type InvoiceRepo struct{ mock.Mock }

func (m *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*entity.Invoice)
	return inv, args.Error(1)
}

func (m *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.Invoice)
	return list, args.Error(1)
}

func (m *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InvoiceRepo) SetCanceledAt(ctx context.Context, id string, at *time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *InvoiceRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *InvoiceRepo) ApplyStatus(ctx context.Context, ins finance.InvoiceUpdateInstruction) error {
	return m.Called(ctx, ins).Error(0)
}

// ── Telefonía ─────────────────────────────────────────────────────────────────

type TelephonyRepo struct{ mock.Mock }

func (m *TelephonyRepo) Create(ctx context.Context, l *entity.TelephonyLine) error {
	return m.Called(ctx, l).Error(0)
}

func (m *TelephonyRepo) GetByID(ctx context.Context, id string) (*entity.TelephonyLine, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.TelephonyLine)
	return l, args.Error(1)
}

func (m *TelephonyRepo) List(ctx context.Context, f repository.TelephonyFilter) ([]*entity.TelephonyLine, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.TelephonyLine)
	return list, args.Error(1)
}

func (m *TelephonyRepo) Update(ctx context.Context, l *entity.TelephonyLine) error {
	return m.Called(ctx, l).Error(0)
}

func (m *TelephonyRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// ── Auditoría ─────────────────────────────────────────────────────────────────

type AuditRepo struct{ mock.Mock }

func (m *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *AuditRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]*entity.AuditEntry)
	return list, args.Error(1)
}

func (m *AuditRepo) ListByTargets(ctx context.Context, targets []string, limit int) ([]*entity.AuditEntry, error) {
	args := m.Called(ctx, targets, limit)
	list, _ := args.Get(0).([]*entity.AuditEntry)
	return list, args.Error(1)
}

func (m *AuditRepo) ListStatusEvents(ctx context.Context, invoiceID string) ([]*entity.StatusEvent, error) {
	args := m.Called(ctx, invoiceID)
	list, _ := args.Get(0).([]*entity.StatusEvent)
	return list, args.Error(1)
}

type AuditSink struct{ mock.Mock }

func (m *AuditSink) Publish(ctx context.Context, ev entity.StatusEvent) {
	m.Called(ctx, ev)
}

type ReportGenerator struct{ mock.Mock }

func (m *ReportGenerator) GenerateReconciliationReport(ctx context.Context, r *ports.ReconciliationReport) ([]byte, error) {
	args := m.Called(ctx, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TxRunner ejecuta fn con los repos mock, sin transacción real.
// Si fn falla, Run devuelve el error (como un rollback).
type TxRunner struct {
	Repos ports.TxRepos
	Calls int
}

func (t *TxRunner) Run(_ context.Context, fn func(repos ports.TxRepos) error) error {
	t.Calls++
	return fn(t.Repos)
}
