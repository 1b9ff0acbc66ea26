// Package billing contiene los casos de uso de facturas: registro, conciliación
// contra el contrato, flujo de estados y reporte mensual.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
	"github.com/jhoicas/Conciliacion-api/internal/domain/repository"
)

// InvoiceUseCase registro y consulta de facturas con su conciliación.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	contracts repository.ContractRepository
	tx        ports.TxRunner
	policy    finance.MonetaryEditPolicy
	log       zerolog.Logger
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. policy decide si se pueden editar
// valores de facturas pagadas (ver finance.EditPolicyFor).
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	tx ports.TxRunner,
	policy finance.MonetaryEditPolicy,
	log zerolog.Logger,
) *InvoiceUseCase {
	if policy == nil {
		policy = finance.PermissiveEditPolicy{}
	}
	return &InvoiceUseCase{invoices: invoices, contracts: contracts, tx: tx, policy: policy, log: log, now: time.Now}
}

// Create registra una factura en estado PENDING.
// El contrato debe existir: domain.ErrMissingContractReference si no.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	month, err := entity.ParseReferenceMonth(in.ReferenceMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	due, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	contract, err := uc.contracts.GetByID(ctx, in.ContractID)
	if err != nil {
		return nil, fmt.Errorf("obtener contrato: %w", err)
	}
	if contract == nil {
		return nil, fmt.Errorf("factura → contrato %s: %w", in.ContractID, domain.ErrMissingContractReference)
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		ContractID:      contract.ID,
		ReferenceMonth:  month,
		DueDate:         due,
		CircuitNumber:   strings.TrimSpace(in.CircuitNumber),
		OriginalAmount:  in.OriginalAmount,
		Surcharge:       in.Surcharge,
		Discount:        in.Discount,
		Status:          entity.InvoiceStatusPending,
		Notes:           in.Notes,
		PrimaryDocument: entity.DocumentRef{Path: in.PrimaryDocument.Path, Name: in.PrimaryDocument.Name},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.SecondaryDocument != nil {
		inv.SecondaryDocument = entity.DocumentRef{Path: in.SecondaryDocument.Path, Name: in.SecondaryDocument.Name}
	}
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		return r.Audit.Append(ctx, newAuditEntry(actor, entity.AuditActionCreate, inv.ID,
			fmt.Sprintf("factura %s de %q, valor %s", inv.ReferenceMonth, contract.Name, inv.FinalAmount().String()), now))
	})
	if err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("contract_id", contract.ID).Str("actor", actor).Msg("factura creada")
	return ToInvoiceResponse(inv, contract), nil
}

// GetByID obtiene una factura con su conciliación. domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := getInvoice(ctx, uc.invoices, id)
	if err != nil {
		return nil, err
	}
	contract, err := uc.contracts.GetByID(ctx, inv.ContractID)
	if err != nil {
		return nil, fmt.Errorf("obtener contrato: %w", err)
	}
	return ToInvoiceResponse(inv, contract), nil
}

// List lista facturas con su conciliación. Facturas y contratos se consultan en paralelo.
func (uc *InvoiceUseCase) List(ctx context.Context, filter repository.InvoiceFilter) (dto.ListResponse[dto.InvoiceResponse], error) {
	type invoicesResult struct {
		list []*entity.Invoice
		err  error
	}
	type contractsResult struct {
		list []*entity.Contract
		err  error
	}
	invCh := make(chan invoicesResult, 1)
	conCh := make(chan contractsResult, 1)

	go func() {
		list, err := uc.invoices.List(ctx, filter)
		invCh <- invoicesResult{list, err}
	}()
	go func() {
		list, err := uc.contracts.List(ctx)
		conCh <- contractsResult{list, err}
	}()

	invs := <-invCh
	cons := <-conCh
	if invs.err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, fmt.Errorf("listar facturas: %w", invs.err)
	}
	if cons.err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, fmt.Errorf("listar contratos: %w", cons.err)
	}

	byID := make(map[string]*entity.Contract, len(cons.list))
	for _, c := range cons.list {
		byID[c.ID] = c
	}
	items := make([]dto.InvoiceResponse, 0, len(invs.list))
	for _, inv := range invs.list {
		items = append(items, *ToInvoiceResponse(inv, byID[inv.ContractID]))
	}
	return dto.NewList(items), nil
}

// Update aplica los campos presentes. Cambios de valores pasan por la política de edición.
func (uc *InvoiceUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	current, err := getInvoice(ctx, uc.invoices, id)
	if err != nil {
		return nil, err
	}
	next := *current
	var (
		cs       entity.ChangeSet
		contract *entity.Contract
	)

	if in.ContractID != nil && strings.TrimSpace(*in.ContractID) != current.ContractID {
		target := strings.TrimSpace(*in.ContractID)
		contract, err = uc.contracts.GetByID(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("obtener contrato: %w", err)
		}
		if contract == nil {
			return nil, fmt.Errorf("factura %s → contrato %s: %w", current.ID, target, domain.ErrMissingContractReference)
		}
		cs.Add("contract_id", next.ContractID, contract.ID)
		next.ContractID = contract.ID
	}
	if in.ReferenceMonth != nil {
		m, err := entity.ParseReferenceMonth(*in.ReferenceMonth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cs.Add("reference_month", next.ReferenceMonth, m)
		next.ReferenceMonth = m
	}
	if in.DueDate != nil {
		due, err := dto.ParseDate(in.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cs.Add("due_date", formatDate(next.DueDate), formatDate(due))
		next.DueDate = due
	}
	if in.CircuitNumber != nil {
		v := strings.TrimSpace(*in.CircuitNumber)
		cs.Add("circuit_number", next.CircuitNumber, v)
		next.CircuitNumber = v
	}
	if in.OriginalAmount != nil {
		cs.Add("original_amount", next.OriginalAmount, *in.OriginalAmount)
		next.OriginalAmount = *in.OriginalAmount
	}
	if in.Surcharge != nil {
		cs.Add("surcharge", next.Surcharge, *in.Surcharge)
		next.Surcharge = *in.Surcharge
	}
	if in.Discount != nil {
		cs.Add("discount", next.Discount, *in.Discount)
		next.Discount = *in.Discount
	}
	if in.Notes != nil {
		cs.Add("notes", next.Notes, *in.Notes)
		next.Notes = *in.Notes
	}
	if in.PrimaryDocument != nil {
		cs.Add("primary_document", next.PrimaryDocument.Name, in.PrimaryDocument.Name)
		next.PrimaryDocument = entity.DocumentRef{Path: in.PrimaryDocument.Path, Name: in.PrimaryDocument.Name}
	}
	if in.SecondaryDocument != nil {
		cs.Add("secondary_document", next.SecondaryDocument.Name, in.SecondaryDocument.Name)
		next.SecondaryDocument = entity.DocumentRef{Path: in.SecondaryDocument.Path, Name: in.SecondaryDocument.Name}
	}

	if finance.MonetaryFieldsChanged(current, &next) {
		if err := uc.policy.CheckMonetaryEdit(current); err != nil {
			return nil, err
		}
	}
	if err := validateInvoice(&next); err != nil {
		return nil, err
	}

	if contract == nil {
		if contract, err = uc.contracts.GetByID(ctx, next.ContractID); err != nil {
			return nil, fmt.Errorf("obtener contrato: %w", err)
		}
	}
	if cs.Empty() {
		return ToInvoiceResponse(&next, contract), nil
	}

	now := uc.now()
	next.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Invoices.Update(ctx, &next); err != nil {
			return err
		}
		return r.Audit.Append(ctx, newAuditEntry(actor, entity.AuditActionUpdate, next.ID, cs.String(), now))
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", next.ID).Str("actor", actor).Str("changes", cs.String()).Msg("factura actualizada")
	return ToInvoiceResponse(&next, contract), nil
}

// Cancel desactiva la factura: sale de los listados y de los totales del dashboard.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, actor, id string) (*dto.InvoiceResponse, error) {
	now := uc.now()
	return uc.setCanceled(ctx, actor, id, &now, entity.AuditActionCancel)
}

// Reactivate vuelve a activar una factura desactivada.
func (uc *InvoiceUseCase) Reactivate(ctx context.Context, actor, id string) (*dto.InvoiceResponse, error) {
	return uc.setCanceled(ctx, actor, id, nil, entity.AuditActionReactivate)
}

func (uc *InvoiceUseCase) setCanceled(ctx context.Context, actor, id string, at *time.Time, action string) (*dto.InvoiceResponse, error) {
	inv, err := getInvoice(ctx, uc.invoices, id)
	if err != nil {
		return nil, err
	}
	contract, err := uc.contracts.GetByID(ctx, inv.ContractID)
	if err != nil {
		return nil, fmt.Errorf("obtener contrato: %w", err)
	}
	if (at == nil) == inv.Active() {
		return ToInvoiceResponse(inv, contract), nil
	}
	now := uc.now()
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Invoices.SetCanceledAt(ctx, inv.ID, at); err != nil {
			return err
		}
		return r.Audit.Append(ctx, newAuditEntry(actor, action, inv.ID,
			fmt.Sprintf("factura %s, valor %s", inv.ReferenceMonth, inv.FinalAmount().String()), now))
	})
	if err != nil {
		return nil, fmt.Errorf("factura %s: %w", id, err)
	}
	inv.CanceledAt = at
	inv.UpdatedAt = now
	uc.log.Info().Str("invoice_id", inv.ID).Str("action", action).Str("actor", actor).Msg("vigencia de factura")
	return ToInvoiceResponse(inv, contract), nil
}

// Delete elimina una factura.
func (uc *InvoiceUseCase) Delete(ctx context.Context, actor, id string) error {
	inv, err := getInvoice(ctx, uc.invoices, id)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Invoices.Delete(ctx, inv.ID); err != nil {
			return err
		}
		return r.Audit.Append(ctx, newAuditEntry(actor, entity.AuditActionDelete, inv.ID,
			fmt.Sprintf("factura %s, valor %s", inv.ReferenceMonth, inv.FinalAmount().String()), uc.now()))
	})
	if err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("actor", actor).Msg("factura eliminada")
	return nil
}

// ToInvoiceResponse arma la respuesta con la conciliación. contract nil = huérfana.
func ToInvoiceResponse(inv *entity.Invoice, contract *entity.Contract) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:              inv.ID,
		ContractID:      inv.ContractID,
		ReferenceMonth:  inv.ReferenceMonth.String(),
		DueDate:         dto.FormatDate(inv.DueDate),
		CircuitNumber:   inv.CircuitNumber,
		OriginalAmount:  inv.OriginalAmount,
		Surcharge:       inv.Surcharge,
		Discount:        inv.Discount,
		FinalAmount:     inv.FinalAmount().Round(2),
		Status:          string(inv.Status),
		PaymentDate:     dto.FormatDate(inv.PaymentDate),
		Notes:           inv.Notes,
		PrimaryDocument: dto.DocumentDTO{Path: inv.PrimaryDocument.Path, Name: inv.PrimaryDocument.Name},
		Active:          inv.Active(),
		CanceledAt:      inv.CanceledAt,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if !inv.SecondaryDocument.IsZero() {
		out.SecondaryDocument = &dto.DocumentDTO{Path: inv.SecondaryDocument.Path, Name: inv.SecondaryDocument.Name}
	}
	if contract != nil {
		out.ContractName = contract.Name
	}

	rec, err := finance.Reconcile(inv, contract)
	switch {
	case err == nil:
		out.Reconciliation = &dto.ReconciliationDTO{
			ExpectedAmount: rec.ExpectedAmount.Round(2),
			Delta:          rec.Delta.Round(2),
			Divergent:      rec.Divergent,
		}
	case errors.Is(err, domain.ErrMissingContractReference):
		out.Orphan = true
	default:
		is := dto.IssueFrom(finance.RecordIssue{
			Kind: finance.KindOf(err), Record: finance.RecordInvoice, RecordID: inv.ID, Err: err,
			Field: fieldOf(err),
		})
		out.Issue = &is
	}
	return out
}

func getInvoice(ctx context.Context, repo repository.InvoiceRepository, id string) (*entity.Invoice, error) {
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}

func validateInvoice(inv *entity.Invoice) error {
	if inv.ReferenceMonth.IsZero() {
		return fmt.Errorf("%w: reference_month es requerido", domain.ErrInvalidInput)
	}
	if inv.PrimaryDocument.IsZero() {
		return fmt.Errorf("%w: primary_document es requerido", domain.ErrInvalidInput)
	}
	return finance.ValidateInvoiceValues(inv)
}

func fieldOf(err error) string {
	var fe *finance.MonetaryFieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

func formatDate(t *time.Time) string {
	if s := dto.FormatDate(t); s != nil {
		return *s
	}
	return ""
}

func newAuditEntry(actor, action, invoiceID, details string, at time.Time) *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:        ulid.Make().String(),
		Actor:     actor,
		Action:    action,
		Target:    entity.AuditTargetInvoice,
		TargetID:  invoiceID,
		Details:   details,
		Timestamp: at,
	}
}
