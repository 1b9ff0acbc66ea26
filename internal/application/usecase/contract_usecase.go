package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

// ContractUseCase casos de uso de contratos. Cada escritura deja su entrada de
// auditoría en la misma transacción.
type ContractUseCase struct {
	repo repository.ContractRepository
	tx   ports.TxRunner
	log  zerolog.Logger
	now  func() time.Time
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository, tx ports.TxRunner, log zerolog.Logger) *ContractUseCase {
	return &ContractUseCase{repo: repo, tx: tx, log: log, now: time.Now}
}

// Create registra un contrato nuevo (vigente).
func (uc *ContractUseCase) Create(ctx context.Context, actor string, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	start, err := dto.ParseDate(in.BillingStartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := uc.now()
	c := &entity.Contract{
		ID:                  uuid.New().String(),
		Name:                strings.TrimSpace(in.Name),
		Kind:                strings.TrimSpace(in.Kind),
		TotalValue:          in.TotalValue,
		DurationMonths:      in.DurationMonths,
		BillingStartDate:    start,
		DueDay:              in.DueDay,
		CostCenter:          strings.TrimSpace(in.CostCenter),
		Branch:              strings.TrimSpace(in.Branch),
		VendorName:          strings.TrimSpace(in.VendorName),
		VendorTaxID:         strings.TrimSpace(in.VendorTaxID),
		SecondVendorName:    strings.TrimSpace(in.SecondVendorName),
		SecondVendorTaxID:   strings.TrimSpace(in.SecondVendorTaxID),
		HasApportionment:    in.HasApportionment,
		ApportionedBranches: cleanBranches(in.ApportionedBranches),
		Identifiers:         in.Identifiers,
		AdditionalInfo:      in.AdditionalInfo,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := validateContract(c); err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, entity.AuditActionCreate, entity.AuditTargetContract, c.ID,
			fmt.Sprintf("contrato %q, total %s en %d meses", c.Name, c.TotalValue.String(), c.DurationMonths), now))
	})
	if err != nil {
		return nil, fmt.Errorf("crear contrato: %w", err)
	}
	uc.log.Info().Str("contract_id", c.ID).Str("actor", actor).Msg("contrato creado")
	return toContractResponse(c), nil
}

// GetByID obtiene un contrato. domain.ErrNotFound si no existe.
func (uc *ContractUseCase) GetByID(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toContractResponse(c), nil
}

// List lista los contratos; includeCanceled agrega los cancelados.
func (uc *ContractUseCase) List(ctx context.Context, includeCanceled bool) (dto.ListResponse[dto.ContractResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return dto.ListResponse[dto.ContractResponse]{}, fmt.Errorf("listar contratos: %w", err)
	}
	items := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		if !includeCanceled && !c.InForce() {
			continue
		}
		items = append(items, *toContractResponse(c))
	}
	return dto.NewList(items), nil
}

// Update aplica los campos presentes y registra el resumen de cambios.
func (uc *ContractUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	var cs entity.ChangeSet

	setString(&cs, "name", &c.Name, in.Name)
	setString(&cs, "kind", &c.Kind, in.Kind)
	setString(&cs, "cost_center", &c.CostCenter, in.CostCenter)
	setString(&cs, "branch", &c.Branch, in.Branch)
	setString(&cs, "vendor_name", &c.VendorName, in.VendorName)
	setString(&cs, "vendor_tax_id", &c.VendorTaxID, in.VendorTaxID)
	setString(&cs, "second_vendor_name", &c.SecondVendorName, in.SecondVendorName)
	setString(&cs, "second_vendor_tax_id", &c.SecondVendorTaxID, in.SecondVendorTaxID)
	setString(&cs, "identifiers", &c.Identifiers, in.Identifiers)
	setString(&cs, "additional_info", &c.AdditionalInfo, in.AdditionalInfo)
	if in.TotalValue != nil {
		cs.Add("total_value", c.TotalValue, *in.TotalValue)
		c.TotalValue = *in.TotalValue
	}
	if in.DurationMonths != nil {
		cs.Add("duration_months", c.DurationMonths, *in.DurationMonths)
		c.DurationMonths = *in.DurationMonths
	}
	if in.DueDay != nil {
		cs.Add("due_day", c.DueDay, *in.DueDay)
		c.DueDay = *in.DueDay
	}
	if in.BillingStartDate != nil {
		start, err := dto.ParseDate(in.BillingStartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cs.Add("billing_start_date", derefDate(c.BillingStartDate), derefDate(start))
		c.BillingStartDate = start
	}
	if in.HasApportionment != nil {
		cs.Add("has_apportionment", c.HasApportionment, *in.HasApportionment)
		c.HasApportionment = *in.HasApportionment
		if !c.HasApportionment {
			c.ApportionedBranches = nil
		}
	}
	if in.ApportionedBranches != nil {
		branches := cleanBranches(in.ApportionedBranches)
		cs.Add("apportioned_branches", strings.Join(c.ApportionedBranches, ","), strings.Join(branches, ","))
		c.ApportionedBranches = branches
	}
	if err := validateContract(c); err != nil {
		return nil, err
	}
	if cs.Empty() {
		return toContractResponse(c), nil
	}

	now := uc.now()
	c.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Contracts.Update(ctx, c); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, entity.AuditActionUpdate, entity.AuditTargetContract, c.ID, cs.String(), now))
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar contrato: %w", err)
	}
	uc.log.Info().Str("contract_id", c.ID).Str("actor", actor).Str("changes", cs.String()).Msg("contrato actualizado")
	return toContractResponse(c), nil
}

// Cancel desactiva el contrato: sale del pronóstico pero sigue resolviendo sus facturas.
func (uc *ContractUseCase) Cancel(ctx context.Context, actor, id string) (*dto.ContractResponse, error) {
	now := uc.now()
	return uc.setCanceled(ctx, actor, id, &now, entity.AuditActionCancel)
}

// Reactivate vuelve a poner en vigencia un contrato cancelado.
func (uc *ContractUseCase) Reactivate(ctx context.Context, actor, id string) (*dto.ContractResponse, error) {
	return uc.setCanceled(ctx, actor, id, nil, entity.AuditActionReactivate)
}

func (uc *ContractUseCase) setCanceled(ctx context.Context, actor, id string, at *time.Time, action string) (*dto.ContractResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if (at == nil) == c.InForce() {
		// ya está en el estado pedido
		return toContractResponse(c), nil
	}
	now := uc.now()
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Contracts.SetCanceledAt(ctx, c.ID, at); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, action, entity.AuditTargetContract, c.ID, c.Name, now))
	})
	if err != nil {
		return nil, fmt.Errorf("contrato %s: %w", id, err)
	}
	c.CanceledAt = at
	c.UpdatedAt = now
	uc.log.Info().Str("contract_id", c.ID).Str("action", action).Str("actor", actor).Msg("vigencia de contrato")
	return toContractResponse(c), nil
}

// Delete elimina un contrato. El repositorio devuelve domain.ErrConflict si tiene facturas.
func (uc *ContractUseCase) Delete(ctx context.Context, actor, id string) error {
	c, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Contracts.Delete(ctx, c.ID); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, entity.AuditActionDelete, entity.AuditTargetContract, c.ID, c.Name, uc.now()))
	})
	if err != nil {
		return fmt.Errorf("eliminar contrato: %w", err)
	}
	uc.log.Info().Str("contract_id", c.ID).Str("actor", actor).Msg("contrato eliminado")
	return nil
}

func (uc *ContractUseCase) get(ctx context.Context, id string) (*entity.Contract, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener contrato: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("contrato %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// validateContract invariantes de ingreso. El motor tolera duraciones <= 0,
// pero no se aceptan contratos nuevos o editados con esa duración.
func validateContract(c *entity.Contract) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if err := finance.ValidateContractValues(c); err != nil {
		return err
	}
	if err := finance.CheckDuration(c); err != nil {
		return err
	}
	if c.DueDay < 0 || c.DueDay > 31 {
		return fmt.Errorf("%w: due_day debe estar entre 1 y 31", domain.ErrInvalidInput)
	}
	if c.HasApportionment != (len(c.ApportionedBranches) > 0) {
		return fmt.Errorf("%w: apportioned_branches requerido solo cuando has_apportionment", domain.ErrInvalidInput)
	}
	return nil
}

func toContractResponse(c *entity.Contract) *dto.ContractResponse {
	branches := c.ApportionedBranches
	if branches == nil {
		branches = []string{}
	}
	return &dto.ContractResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Kind:                c.Kind,
		TotalValue:          c.TotalValue,
		DurationMonths:      c.DurationMonths,
		ExpectedMonthlyCost: finance.ExpectedMonthlyCost(c).Round(2),
		BillingStartDate:    dto.FormatDate(c.BillingStartDate),
		DueDay:              c.DueDay,
		CostCenter:          c.CostCenter,
		Branch:              c.Branch,
		VendorName:          c.VendorName,
		VendorTaxID:         c.VendorTaxID,
		SecondVendorName:    c.SecondVendorName,
		SecondVendorTaxID:   c.SecondVendorTaxID,
		HasApportionment:    c.HasApportionment,
		ApportionedBranches: branches,
		Identifiers:         c.Identifiers,
		AdditionalInfo:      c.AdditionalInfo,
		InForce:             c.InForce(),
		CanceledAt:          c.CanceledAt,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
