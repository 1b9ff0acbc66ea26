package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// monthArg mes de referencia como parámetro: NULL si es cero.
func monthArg(m entity.ReferenceMonth) *string {
	if m.IsZero() {
		return nil
	}
	s := m.String()
	return &s
}

func scanMonth(s *string) (entity.ReferenceMonth, error) {
	if s == nil || *s == "" {
		return entity.ReferenceMonth{}, nil
	}
	m, err := entity.ParseReferenceMonth(*s)
	if err != nil {
		return entity.ReferenceMonth{}, fmt.Errorf("reference_month %q: %w", *s, err)
	}
	return m, nil
}

// dateOnly trunca a la fecha (columnas DATE).
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
