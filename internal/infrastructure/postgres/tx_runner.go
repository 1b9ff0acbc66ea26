package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// txBeginner lo cumple *pgxpool.Pool.
type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner agrupa escrituras de contratos, facturas y líneas junto con su fila
// de auditoría en una única transacción READ COMMITTED.
type TxRunner struct {
	db   txBeginner
	opts pgx.TxOptions
}

// NewTxRunner construye el runner sobre el pool.
func NewTxRunner(db txBeginner) *TxRunner {
	return &TxRunner{db: db, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// Run confirma si fn no falla; cualquier error deja la transacción revertida.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	return pgx.BeginTxFunc(ctx, r.db, r.opts, func(tx pgx.Tx) error {
		return fn(reposFor(tx))
	})
}

func reposFor(q Querier) ports.TxRepos {
	return ports.TxRepos{
		Contracts: NewContractRepository(q),
		Invoices:  NewInvoiceRepository(q),
		Lines:     NewTelephonyRepository(q),
		Audit:     NewAuditRepository(q),
	}
}
