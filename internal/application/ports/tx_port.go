package ports

import (
	"context"

	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

// TxRepos repositorios atados a la misma transacción.
type TxRepos struct {
	Contracts repository.ContractRepository
	Invoices  repository.InvoiceRepository
	Lines     repository.TelephonyRepository
	Audit     repository.AuditRepository
}

// TxRunner ejecuta fn dentro de una transacción: un cambio de registro y su
// entrada de auditoría se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
