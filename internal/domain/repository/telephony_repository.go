package repository

import (
	"context"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// TelephonyFilter filtros de listado. Carrier vacío = todas las operadoras.
type TelephonyFilter struct {
	Carrier        entity.Carrier
	ReferenceMonth entity.ReferenceMonth
}

// TelephonyRepository define el puerto de persistencia para TelephonyLine.
type TelephonyRepository interface {
	Create(ctx context.Context, line *entity.TelephonyLine) error
	GetByID(ctx context.Context, id string) (*entity.TelephonyLine, error)
	List(ctx context.Context, filter TelephonyFilter) ([]*entity.TelephonyLine, error)
	Update(ctx context.Context, line *entity.TelephonyLine) error
	Delete(ctx context.Context, id string) error
}
