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
	"github.com/jhoicas/Conciliacion-api/pkg/money"
)

// AllCarriers valor de filtro que desactiva el filtro por operadora.
const AllCarriers = "ALL"

// TelephonyUseCase líneas telefónicas y su prorrateo por filial.
type TelephonyUseCase struct {
	repo    repository.TelephonyRepository
	tx      ports.TxRunner
	metrics ports.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewTelephonyUseCase construye el caso de uso.
func NewTelephonyUseCase(repo repository.TelephonyRepository, tx ports.TxRunner, metrics ports.Metrics, log zerolog.Logger) *TelephonyUseCase {
	return &TelephonyUseCase{repo: repo, tx: tx, metrics: metrics, log: log, now: time.Now}
}

// ParseTelephonyFilter interpreta los query params carrier ("ALL" o vacío = todas) y month (YYYY-MM).
func ParseTelephonyFilter(carrier, month string) (repository.TelephonyFilter, error) {
	var f repository.TelephonyFilter
	if c := strings.TrimSpace(carrier); c != "" && !strings.EqualFold(c, AllCarriers) {
		parsed, err := entity.ParseCarrier(c)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		f.Carrier = parsed
	}
	if strings.TrimSpace(month) != "" {
		m, err := entity.ParseReferenceMonth(month)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		f.ReferenceMonth = m
	}
	return f, nil
}

// Create registra una línea.
func (uc *TelephonyUseCase) Create(ctx context.Context, actor string, in dto.CreateTelephonyLineRequest) (*dto.TelephonyLineResponse, error) {
	l := &entity.TelephonyLine{
		ID:           uuid.New().String(),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		MonthlyValue: in.MonthlyValue,
		Description:  strings.TrimSpace(in.Description),
		CostCenter:   strings.TrimSpace(in.CostCenter),
		Branch:       strings.TrimSpace(in.Branch),
		Carrier:      entity.CarrierManual,
		CreatedAt:    uc.now(),
	}
	if in.Carrier != "" {
		c, err := entity.ParseCarrier(in.Carrier)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		l.Carrier = c
	}
	if in.ReferenceMonth != "" {
		m, err := entity.ParseReferenceMonth(in.ReferenceMonth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		l.ReferenceMonth = m
	}
	if err := validateLine(l); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Lines.Create(ctx, l); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, entity.AuditActionCreate, entity.AuditTargetTelephonyLine, l.ID,
			fmt.Sprintf("línea %s, %s", l.PhoneNumber, l.MonthlyValue.String()), l.CreatedAt))
	})
	if err != nil {
		return nil, fmt.Errorf("crear línea: %w", err)
	}
	return toLineResponse(l), nil
}

// GetByID obtiene una línea. domain.ErrNotFound si no existe.
func (uc *TelephonyUseCase) GetByID(ctx context.Context, id string) (*dto.TelephonyLineResponse, error) {
	l, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLineResponse(l), nil
}

// List lista las líneas del filtro.
func (uc *TelephonyUseCase) List(ctx context.Context, f repository.TelephonyFilter) (dto.ListResponse[dto.TelephonyLineResponse], error) {
	lines, err := uc.repo.List(ctx, f)
	if err != nil {
		return dto.ListResponse[dto.TelephonyLineResponse]{}, fmt.Errorf("listar líneas: %w", err)
	}
	items := make([]dto.TelephonyLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, *toLineResponse(l))
	}
	return dto.NewList(items), nil
}

// Update aplica los campos presentes.
func (uc *TelephonyUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateTelephonyLineRequest) (*dto.TelephonyLineResponse, error) {
	l, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	var cs entity.ChangeSet
	setString(&cs, "phone_number", &l.PhoneNumber, in.PhoneNumber)
	setString(&cs, "description", &l.Description, in.Description)
	setString(&cs, "cost_center", &l.CostCenter, in.CostCenter)
	setString(&cs, "branch", &l.Branch, in.Branch)
	if in.MonthlyValue != nil {
		cs.Add("monthly_value", l.MonthlyValue, *in.MonthlyValue)
		l.MonthlyValue = *in.MonthlyValue
	}
	if in.Carrier != nil {
		c, err := entity.ParseCarrier(*in.Carrier)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cs.Add("carrier", l.Carrier, c)
		l.Carrier = c
	}
	if in.ReferenceMonth != nil {
		var m entity.ReferenceMonth
		if *in.ReferenceMonth != "" {
			if m, err = entity.ParseReferenceMonth(*in.ReferenceMonth); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
		}
		cs.Add("reference_month", l.ReferenceMonth, m)
		l.ReferenceMonth = m
	}
	if err := validateLine(l); err != nil {
		return nil, err
	}
	if cs.Empty() {
		return toLineResponse(l), nil
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Lines.Update(ctx, l); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, entity.AuditActionUpdate, entity.AuditTargetTelephonyLine, l.ID, cs.String(), uc.now()))
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar línea: %w", err)
	}
	uc.log.Info().Str("line_id", l.ID).Str("actor", actor).Str("changes", cs.String()).Msg("línea actualizada")
	return toLineResponse(l), nil
}

// Delete elimina una línea.
func (uc *TelephonyUseCase) Delete(ctx context.Context, actor, id string) error {
	l, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Lines.Delete(ctx, l.ID); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditEntry(actor, entity.AuditActionDelete, entity.AuditTargetTelephonyLine, l.ID, l.PhoneNumber, uc.now()))
	})
	if err != nil {
		return fmt.Errorf("eliminar línea: %w", err)
	}
	return nil
}

// Apportion prorratea por filial las líneas del filtro. El filtro por operadora se
// aplica antes del agregador, que no lo conoce.
func (uc *TelephonyUseCase) Apportion(ctx context.Context, f repository.TelephonyFilter) (*dto.ApportionmentResponse, error) {
	lines, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("prorrateo: listar líneas: %w", err)
	}
	a := finance.ApportionByBranch(lines)
	uc.metrics.ApportionmentComputed(a)
	if len(a.Issues) > 0 {
		uc.log.Warn().Int("issues", len(a.Issues)).Msg("prorrateo con líneas excluidas")
	}

	carrier := AllCarriers
	if f.Carrier != "" {
		carrier = string(f.Carrier)
	}
	return ToApportionmentResponse(a, f.ReferenceMonth, carrier), nil
}

// ToApportionmentResponse convierte el resultado del agregador (redondeo de presentación).
func ToApportionmentResponse(a finance.Apportionment, month entity.ReferenceMonth, carrier string) *dto.ApportionmentResponse {
	branches := make([]dto.BranchTotalDTO, 0, len(a.Branches))
	for _, b := range a.Branches {
		branches = append(branches, dto.BranchTotalDTO{
			Branch:  b.Branch,
			Total:   b.Total.Round(2),
			Lines:   b.Lines,
			Display: money.Format(b.Total),
		})
	}
	return &dto.ApportionmentResponse{
		ReferenceMonth: month.String(),
		Carrier:        carrier,
		Branches:       branches,
		Total:          a.Total.Round(2),
		Issues:         dto.IssuesFrom(a.Issues),
	}
}

func (uc *TelephonyUseCase) get(ctx context.Context, id string) (*entity.TelephonyLine, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener línea: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("línea %s: %w", id, domain.ErrNotFound)
	}
	return l, nil
}

func validateLine(l *entity.TelephonyLine) error {
	if l.PhoneNumber == "" {
		return fmt.Errorf("%w: phone_number es requerido", domain.ErrInvalidInput)
	}
	return finance.ValidateLineValues(l)
}

func toLineResponse(l *entity.TelephonyLine) *dto.TelephonyLineResponse {
	return &dto.TelephonyLineResponse{
		ID:             l.ID,
		PhoneNumber:    l.PhoneNumber,
		MonthlyValue:   l.MonthlyValue,
		Description:    l.Description,
		ReferenceMonth: l.ReferenceMonth.String(),
		CostCenter:     l.CostCenter,
		Branch:         l.Branch,
		Carrier:        string(l.Carrier),
		CreatedAt:      l.CreatedAt,
	}
}
