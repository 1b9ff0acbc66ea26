package dto

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de fechas de calendario en la API (vencimientos, pagos, inicio de cobro).
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha "YYYY-MM-DD". nil o vacío devuelve nil.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("fecha %q: formato esperado YYYY-MM-DD", *s)
	}
	return &t, nil
}

// FormatDate formatea una fecha opcional; nil devuelve nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ListResponse lista sin paginación con total de elementos.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye la respuesta; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
