package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

var _ repository.TelephonyRepository = (*TelephonyRepo)(nil)

// TelephonyRepo líneas telefónicas (usable con pool o tx).
type TelephonyRepo struct {
	q Querier
}

func NewTelephonyRepository(q Querier) *TelephonyRepo {
	return &TelephonyRepo{q: q}
}

const lineColumns = `id, phone_number, monthly_value, description, reference_month, cost_center, branch, carrier, created_at`

func (r *TelephonyRepo) Create(ctx context.Context, l *entity.TelephonyLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO telephony_lines (`+lineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.PhoneNumber, l.MonthlyValue, l.Description, monthArg(l.ReferenceMonth), l.CostCenter, l.Branch,
		string(l.Carrier), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert telephony line: %w", err)
	}
	return nil
}

func (r *TelephonyRepo) GetByID(ctx context.Context, id string) (*entity.TelephonyLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, `SELECT `+lineColumns+` FROM telephony_lines WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get telephony line: %w", err)
	}
	return l, nil
}

// List aplica los filtros en SQL; el orden es estable (created_at, id) para el prorrateo.
func (r *TelephonyRepo) List(ctx context.Context, f repository.TelephonyFilter) ([]*entity.TelephonyLine, error) {
	var (
		where []string
		args  []any
	)
	if f.Carrier != "" {
		args = append(args, string(f.Carrier))
		where = append(where, fmt.Sprintf("carrier = $%d", len(args)))
	}
	if !f.ReferenceMonth.IsZero() {
		args = append(args, f.ReferenceMonth.String())
		where = append(where, fmt.Sprintf("reference_month = $%d", len(args)))
	}
	query := `SELECT ` + lineColumns + ` FROM telephony_lines`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list telephony lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.TelephonyLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan telephony line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *TelephonyRepo) Update(ctx context.Context, l *entity.TelephonyLine) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE telephony_lines SET
			phone_number = $2, monthly_value = $3, description = $4, reference_month = $5,
			cost_center = $6, branch = $7, carrier = $8
		WHERE id = $1`,
		l.ID, l.PhoneNumber, l.MonthlyValue, l.Description, monthArg(l.ReferenceMonth), l.CostCenter, l.Branch,
		string(l.Carrier),
	)
	if err != nil {
		return fmt.Errorf("update telephony line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("línea %s: %w", l.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *TelephonyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM telephony_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete telephony line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("línea %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanLine(row pgx.Row) (*entity.TelephonyLine, error) {
	var (
		l       entity.TelephonyLine
		month   *string
		carrier string
	)
	if err := row.Scan(&l.ID, &l.PhoneNumber, &l.MonthlyValue, &l.Description, &month, &l.CostCenter,
		&l.Branch, &carrier, &l.CreatedAt); err != nil {
		return nil, err
	}
	m, err := scanMonth(month)
	if err != nil {
		return nil, err
	}
	l.ReferenceMonth = m
	l.Carrier = entity.Carrier(carrier)
	return &l, nil
}
