package usecase

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jhoicas/Conciliacion-api/internal/application/dto"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// auditEntry construye una entrada de auditoría con ID ordenable por tiempo.
func auditEntry(actor, action, target, targetID, details string, at time.Time) *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:        ulid.Make().String(),
		Actor:     actor,
		Action:    action,
		Target:    target,
		TargetID:  targetID,
		Details:   details,
		Timestamp: at,
	}
}

// setString aplica un campo opcional y registra el cambio.
func setString(cs *entity.ChangeSet, field string, dst *string, v *string) {
	if v == nil {
		return
	}
	next := strings.TrimSpace(*v)
	cs.Add(field, *dst, next)
	*dst = next
}

func derefDate(t *time.Time) string {
	if s := dto.FormatDate(t); s != nil {
		return *s
	}
	return ""
}

// cleanBranches quita vacíos y duplicados conservando el orden.
func cleanBranches(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, b := range in {
		b = strings.TrimSpace(b)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
