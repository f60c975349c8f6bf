package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stratix-platform/importcheck/infrastructure/rules"
	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/similarity"
)

// Share of budget-bearing rows with high variance above which the batch
// gets an actionable warning instead of an informational note.
const (
	batchVarianceRatio     = 0.25
	batchVarianceRowsShare = 0.30
)

// batchValidator runs the checks that need visibility across the whole
// batch: duplicate detection, area consistency, and aggregate budget
// variance. All checks are independent and order-insensitive; findings are
// emitted in a fixed order for determinism.
type batchValidator struct{}

// ValidateBatch inspects the full set of validated rows and returns the
// batch-level findings. Batch findings are advisory and never change a
// row's validity.
func (batchValidator) ValidateBatch(rows []domain.ValidatedRow) []domain.GlobalFinding {
	var findings []domain.GlobalFinding

	findings = append(findings, duplicateFindings(rows)...)
	findings = append(findings, areaConsistencyFindings(rows)...)
	findings = append(findings, budgetVarianceFindings(rows)...)

	return findings
}

// duplicateFindings flags groups of rows sharing the same case-folded
// (area, initiative) pair.
func duplicateFindings(rows []domain.ValidatedRow) []domain.GlobalFinding {
	groups := make(map[string][]int)
	for _, row := range rows {
		area, _ := row.Mapped[domain.FieldArea].(string)
		title, _ := row.Mapped[domain.FieldInitiative].(string)
		if strings.TrimSpace(title) == "" {
			continue
		}
		key := similarity.Fold(strings.TrimSpace(area)) + "\x00" + similarity.Fold(strings.TrimSpace(title))
		groups[key] = append(groups[key], row.RowIndex)
	}

	keys := make([]string, 0, len(groups))
	for key, indices := range groups {
		if len(indices) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	findings := make([]domain.GlobalFinding, 0, len(keys))
	for _, key := range keys {
		indices := groups[key]
		sort.Ints(indices)
		title := strings.SplitN(key, "\x00", 2)[1]
		findings = append(findings, domain.GlobalFinding{
			Kind:         domain.KindDuplicateDetection,
			Severity:     domain.SeverityWarning,
			Message:      fmt.Sprintf("Rows %v contain the same initiative %q in the same area", indices, title),
			AffectedRows: indices,
			Suggestions:  []string{"Merge the duplicate rows or rename the initiatives before importing"},
		})
	}

	return findings
}

// areaConsistencyFindings summarizes the rows whose area could not be
// resolved, so the user can fix all of them in one pass.
func areaConsistencyFindings(rows []domain.ValidatedRow) []domain.GlobalFinding {
	var affected []int
	for _, row := range rows {
		for _, f := range row.Findings {
			if f.Field == domain.FieldArea && f.Severity == domain.SeverityError {
				affected = append(affected, row.RowIndex)
				break
			}
		}
	}

	if len(affected) == 0 {
		return nil
	}

	return []domain.GlobalFinding{{
		Kind:         domain.KindAreaConsistency,
		Severity:     domain.SeverityWarning,
		Message:      fmt.Sprintf("%d rows reference areas that could not be resolved", len(affected)),
		AffectedRows: affected,
		Suggestions:  []string{"Review the area column against the organization's existing areas"},
	}}
}

// budgetVarianceFindings analyzes budget discipline across the batch. When
// rows with more than 25% budget/cost variance make up over 30% of the
// budget-bearing rows the batch gets a warning; otherwise an informational
// note records the observed rate.
func budgetVarianceFindings(rows []domain.ValidatedRow) []domain.GlobalFinding {
	var budgetRows, highVariance []int
	for _, row := range rows {
		budget, okBudget := rules.MoneyValue(row.Mapped, domain.FieldBudget)
		cost, okCost := rules.MoneyValue(row.Mapped, domain.FieldActualCost)
		if !okBudget || !okCost || budget <= 0 {
			continue
		}
		budgetRows = append(budgetRows, row.RowIndex)
		if variance := (budget - cost) / budget; variance > batchVarianceRatio || variance < -batchVarianceRatio {
			highVariance = append(highVariance, row.RowIndex)
		}
	}

	if len(budgetRows) == 0 {
		return nil
	}

	share := float64(len(highVariance)) / float64(len(budgetRows))
	if share > batchVarianceRowsShare {
		return []domain.GlobalFinding{{
			Kind:         domain.KindBudgetVariance,
			Severity:     domain.SeverityWarning,
			Message:      fmt.Sprintf("%d of %d budget-bearing rows deviate more than %.0f%% from budget", len(highVariance), len(budgetRows), batchVarianceRatio*100),
			AffectedRows: highVariance,
			Suggestions:  []string{"Review budget and actual cost columns before committing the batch"},
		}}
	}

	return []domain.GlobalFinding{{
		Kind:         domain.KindBudgetVariance,
		Severity:     domain.SeverityInfo,
		Message:      fmt.Sprintf("Budget variance is within tolerance for %d of %d budget-bearing rows", len(budgetRows)-len(highVariance), len(budgetRows)),
		AffectedRows: highVariance,
	}}
}
