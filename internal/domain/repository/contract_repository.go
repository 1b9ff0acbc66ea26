package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// ContractRepository define el puerto de persistencia para Contract.
type ContractRepository interface {
	Create(ctx context.Context, contract *entity.Contract) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	// List devuelve todos los contratos, cancelados incluidos (resuelven referencias de facturas).
	List(ctx context.Context) ([]*entity.Contract, error)
	Update(ctx context.Context, contract *entity.Contract) error
	// SetCanceledAt cancela (at != nil) o reactiva (at == nil) un contrato.
	SetCanceledAt(ctx context.Context, id string, at *time.Time) error
	Delete(ctx context.Context, id string) error
}
