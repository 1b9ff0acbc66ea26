package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, name, kind, total_value, duration_months, billing_start_date, due_day,
	cost_center, branch, vendor_name, vendor_tax_id, second_vendor_name, second_vendor_tax_id,
	has_apportionment, apportioned_branches, identifiers, additional_info, canceled_at, created_at, updated_at`

// Create persiste un nuevo contrato.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Kind, c.TotalValue, c.DurationMonths, dateOnly(c.BillingStartDate), c.DueDay,
		c.CostCenter, c.Branch, c.VendorName, c.VendorTaxID, c.SecondVendorName, c.SecondVendorTaxID,
		c.HasApportionment, branchesArg(c.ApportionedBranches), c.Identifiers, c.AdditionalInfo, c.CanceledAt,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contrato %s: %w", c.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID (cancelado o no).
func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// List todos los contratos ordenados por nombre.
func (r *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos del contrato (no toca canceled_at).
func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts SET
			name = $2, kind = $3, total_value = $4, duration_months = $5, billing_start_date = $6, due_day = $7,
			cost_center = $8, branch = $9, vendor_name = $10, vendor_tax_id = $11, second_vendor_name = $12,
			second_vendor_tax_id = $13, has_apportionment = $14, apportioned_branches = $15, identifiers = $16,
			additional_info = $17, updated_at = $18
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Kind, c.TotalValue, c.DurationMonths, dateOnly(c.BillingStartDate), c.DueDay,
		c.CostCenter, c.Branch, c.VendorName, c.VendorTaxID, c.SecondVendorName, c.SecondVendorTaxID,
		c.HasApportionment, branchesArg(c.ApportionedBranches), c.Identifiers, c.AdditionalInfo, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contrato %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

// SetCanceledAt cancela o reactiva.
func (r *ContractRepo) SetCanceledAt(ctx context.Context, id string, at *time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE contracts SET canceled_at = $2, updated_at = now() WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("cancel contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contrato %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un contrato. Con facturas asociadas devuelve domain.ErrConflict.
func (r *ContractRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("contrato %s tiene facturas: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contrato %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var c entity.Contract
	var branches []string
	err := row.Scan(
		&c.ID, &c.Name, &c.Kind, &c.TotalValue, &c.DurationMonths, &c.BillingStartDate, &c.DueDay,
		&c.CostCenter, &c.Branch, &c.VendorName, &c.VendorTaxID, &c.SecondVendorName, &c.SecondVendorTaxID,
		&c.HasApportionment, &branches, &c.Identifiers, &c.AdditionalInfo, &c.CanceledAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ApportionedBranches = branches
	return &c, nil
}

func branchesArg(b []string) []string {
	if b == nil {
		return []string{}
	}
	return b
}
