package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, contract_id, reference_month, due_date, circuit_number, original_amount,
	surcharge, discount, status, payment_date, notes, primary_doc_path, primary_doc_name,
	secondary_doc_path, secondary_doc_name, canceled_at, created_at, updated_at`

// Create persiste una factura. Si el contrato no existe devuelve domain.ErrMissingContractReference.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ContractID, monthArg(inv.ReferenceMonth), dateOnly(inv.DueDate), inv.CircuitNumber,
		inv.OriginalAmount, inv.Surcharge, inv.Discount, string(inv.Status), dateOnly(inv.PaymentDate), inv.Notes,
		inv.PrimaryDocument.Path, inv.PrimaryDocument.Name, inv.SecondaryDocument.Path, inv.SecondaryDocument.Name,
		inv.CanceledAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("factura → contrato %s: %w", inv.ContractID, domain.ErrMissingContractReference)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s: %w", inv.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List facturas filtradas, ordenadas por mes y vencimiento.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var (
		where []string
		args  []any
	)
	if f.ContractID != "" {
		args = append(args, f.ContractID)
		where = append(where, fmt.Sprintf("contract_id = $%d", len(args)))
	}
	if !f.ReferenceMonth.IsZero() {
		args = append(args, f.ReferenceMonth.String())
		where = append(where, fmt.Sprintf("reference_month = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if !f.IncludeCanceled {
		where = append(where, "canceled_at IS NULL")
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY reference_month DESC, due_date NULLS LAST, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update actualiza contrato, datos y valores. El estado y la fecha de pago solo cambian
// por ApplyStatus; la vigencia por SetCanceledAt.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET
			reference_month = $2, due_date = $3, circuit_number = $4, original_amount = $5, surcharge = $6,
			discount = $7, notes = $8, primary_doc_path = $9, primary_doc_name = $10,
			secondary_doc_path = $11, secondary_doc_name = $12, updated_at = $13, contract_id = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, monthArg(inv.ReferenceMonth), dateOnly(inv.DueDate), inv.CircuitNumber, inv.OriginalAmount,
		inv.Surcharge, inv.Discount, inv.Notes, inv.PrimaryDocument.Path, inv.PrimaryDocument.Name,
		inv.SecondaryDocument.Path, inv.SecondaryDocument.Name, inv.UpdatedAt, inv.ContractID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("factura → contrato %s: %w", inv.ContractID, domain.ErrMissingContractReference)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("factura %s: %w", inv.ID, domain.ErrNotFound)
	}
	return nil
}

// SetCanceledAt desactiva o reactiva.
func (r *InvoiceRepo) SetCanceledAt(ctx context.Context, id string, at *time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET canceled_at = $2, updated_at = now() WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("cancel invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina la factura y su historial de estados (ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ApplyStatus aplica la instrucción y guarda el StatusEvent en la misma transacción.
// Replica finance.InvoiceUpdateInstruction.ApplyTo en SQL: sin fecha en la instrucción
// y sin ClearPaymentDate, payment_date queda como estaba.
func (r *InvoiceRepo) ApplyStatus(ctx context.Context, ins finance.InvoiceUpdateInstruction) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE invoices SET
			status = $2,
			payment_date = CASE
				WHEN $3::date IS NOT NULL THEN $3::date
				WHEN $4 THEN NULL
				ELSE payment_date
			END,
			notes = COALESCE($5, notes),
			updated_at = $6
		WHERE id = $1`
	tag, err := tx.Exec(ctx, query,
		ins.InvoiceID, string(ins.Status), dateOnly(ins.PaymentDate), ins.ClearPaymentDate, ins.Notes, ins.Event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("apply status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("factura %s: %w", ins.InvoiceID, domain.ErrNotFound)
	}

	ev := ins.Event
	_, err = tx.Exec(ctx, `
		INSERT INTO status_events (id, invoice_id, from_status, to_status, payment_date, notes, actor, incomplete, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ev.ID, ev.InvoiceID, string(ev.FromStatus), string(ev.ToStatus), dateOnly(ev.PaymentDate), ev.Notes,
		ev.Actor, ev.Incomplete, ev.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv    entity.Invoice
		month  *string
		status string
	)
	err := row.Scan(
		&inv.ID, &inv.ContractID, &month, &inv.DueDate, &inv.CircuitNumber, &inv.OriginalAmount,
		&inv.Surcharge, &inv.Discount, &status, &inv.PaymentDate, &inv.Notes,
		&inv.PrimaryDocument.Path, &inv.PrimaryDocument.Name,
		&inv.SecondaryDocument.Path, &inv.SecondaryDocument.Name,
		&inv.CanceledAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if inv.ReferenceMonth, err = scanMonth(month); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}
