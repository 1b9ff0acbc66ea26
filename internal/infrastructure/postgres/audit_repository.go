package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora de cambios (audit_log) e historial de estados (status_events).
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append agrega una entrada. La bitácora es de solo inserción.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_log (id, actor, action, target, target_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Actor, e.Action, e.Target, e.TargetID, e.Details, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, actor, action, target, target_id, details, created_at
		FROM audit_log ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return scanAuditEntries(rows)
}

func (r *AuditRepo) ListByTargets(ctx context.Context, targets []string, limit int) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, actor, action, target, target_id, details, created_at
		FROM audit_log WHERE target = ANY($1) ORDER BY created_at DESC, id DESC LIMIT $2`, targets, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit by target: %w", err)
	}
	return scanAuditEntries(rows)
}

func scanAuditEntries(rows pgx.Rows) ([]*entity.AuditEntry, error) {
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Target, &e.TargetID, &e.Details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListStatusEvents el id es ULID, así que ordenar por id es cronológico.
func (r *AuditRepo) ListStatusEvents(ctx context.Context, invoiceID string) ([]*entity.StatusEvent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, from_status, to_status, payment_date, notes, actor, incomplete, created_at
		FROM status_events WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusEvent
	for rows.Next() {
		var (
			ev       entity.StatusEvent
			from, to string
		)
		if err := rows.Scan(&ev.ID, &ev.InvoiceID, &from, &to, &ev.PaymentDate, &ev.Notes, &ev.Actor,
			&ev.Incomplete, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status event: %w", err)
		}
		ev.FromStatus = entity.InvoiceStatus(from)
		ev.ToStatus = entity.InvoiceStatus(to)
		list = append(list, &ev)
	}
	return list, rows.Err()
}
