package finance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
)

// UnclassifiedBranch bucket para líneas sin filial.
const UnclassifiedBranch = "Unclassified"

// BranchTotal total prorrateado de una filial.
type BranchTotal struct {
	Branch string
	Total  decimal.Decimal
	Lines  int
}

// Apportionment resultado del prorrateo. Branches conserva el orden en que cada
// filial apareció por primera vez en la entrada.
type Apportionment struct {
	Branches []BranchTotal
	Total    decimal.Decimal
	Issues   []RecordIssue
}

// ByBranch devuelve el mapa filial → total.
func (a Apportionment) ByBranch() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.Branches))
	for _, b := range a.Branches {
		out[b.Branch] = b.Total
	}
	return out
}

// BranchKey normaliza la filial de una línea: vacío o solo espacios → UnclassifiedBranch.
func BranchKey(branch string) string {
	b := strings.TrimSpace(branch)
	if b == "" {
		return UnclassifiedBranch
	}
	return b
}

// ApportionByBranch agrupa las líneas por filial y suma MonthlyValue con aritmética decimal exacta.
// No filtra por operadora: el caller filtra la entrada antes de llamar.
// Las líneas con valor negativo se excluyen y se reportan en Issues.
func ApportionByBranch(lines []*entity.TelephonyLine) Apportionment {
	res := Apportionment{Total: decimal.Zero}
	index := make(map[string]int)

	for _, l := range lines {
		if l == nil {
			continue
		}
		if err := ValidateLineValues(l); err != nil {
			res.Issues = append(res.Issues, newIssue(RecordTelephonyLine, l.ID, fmt.Errorf("línea %s: %w", l.ID, err)))
			continue
		}
		key := BranchKey(l.Branch)
		i, ok := index[key]
		if !ok {
			i = len(res.Branches)
			index[key] = i
			res.Branches = append(res.Branches, BranchTotal{Branch: key, Total: decimal.Zero})
		}
		res.Branches[i].Total = res.Branches[i].Total.Add(l.MonthlyValue)
		res.Branches[i].Lines++
		res.Total = res.Total.Add(l.MonthlyValue)
	}
	return res
}
