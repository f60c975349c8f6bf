package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/similarity"
)

// CrossFieldFindings runs the checks that span multiple fields of one row:
// budget vs actual cost variance, hours overrun, progress/status
// consistency, and the subtask weight sum. It runs once per row,
// independent of the per-field rule loop.
func CrossFieldFindings(mapped domain.MappedRow, ctx *domain.ValidationContext) []domain.Finding {
	var findings []domain.Finding

	findings = append(findings, budgetVarianceFinding(mapped, ctx)...)
	findings = append(findings, hoursOverrunFinding(mapped)...)
	if ctx.Rules.CheckKPIConsistency {
		findings = append(findings, kpiConsistencyFindings(mapped, ctx)...)
	}
	findings = append(findings, SubtaskWeightFindings(mapped)...)

	return findings
}

// budgetVarianceFinding flags rows whose actual cost deviates from budget
// beyond the configured tolerance ratio.
func budgetVarianceFinding(mapped domain.MappedRow, ctx *domain.ValidationContext) []domain.Finding {
	budget, okBudget := MoneyValue(mapped, domain.FieldBudget)
	cost, okCost := MoneyValue(mapped, domain.FieldActualCost)
	if !okBudget || !okCost || budget <= 0 {
		return nil
	}

	ratio := math.Abs(budget-cost) / budget
	if ratio <= ctx.Rules.BudgetVarianceTolerance {
		return nil
	}

	return []domain.Finding{finding(domain.FieldBudget, domain.SeverityWarning,
		domain.CodeBudgetVarianceHigh,
		fmt.Sprintf("Actual cost %.2f deviates %.0f%% from budget %.2f (tolerance %.0f%%)",
			cost, ratio*100, budget, ctx.Rules.BudgetVarianceTolerance*100),
		cost)}
}

// hoursOverrunFinding flags rows whose actual hours exceed twice the
// estimate.
func hoursOverrunFinding(mapped domain.MappedRow) []domain.Finding {
	estimated, okEst := numberValue(mapped, domain.FieldEstimatedHours)
	actual, okAct := numberValue(mapped, domain.FieldActualHours)
	if !okEst || !okAct || estimated <= 0 {
		return nil
	}

	if actual/estimated <= hoursOverrunRatio {
		return nil
	}

	return []domain.Finding{finding(domain.FieldActualHours, domain.SeverityWarning,
		domain.CodeHoursOverrun,
		fmt.Sprintf("Actual hours %.4g are more than double the estimate of %.4g", actual, estimated),
		actual)}
}

// kpiConsistencyFindings flags contradictory progress/status combinations
// in both directions.
func kpiConsistencyFindings(mapped domain.MappedRow, ctx *domain.ValidationContext) []domain.Finding {
	progressRaw, hasProgress := mapped[domain.FieldProgress]
	statusRaw, hasStatus := mapped[domain.FieldStatus]
	if !hasProgress || !hasStatus || isBlank(progressRaw) || isBlank(statusRaw) {
		return nil
	}

	progress, outcome := parsePercentValue(progressRaw)
	if outcome != parsedOK {
		return nil
	}

	status, isText := stringValue(statusRaw)
	if !isText {
		return nil
	}
	canonical, exact, alias := ctx.Rules.Lexicon.CanonicalStatus(similarity.Fold(strings.TrimSpace(status)))
	if !exact && !alias {
		return nil
	}

	var findings []domain.Finding

	if progress >= 100 && canonical != domain.StatusCompleted {
		findings = append(findings, finding(domain.FieldProgress, domain.SeverityWarning,
			domain.CodeProgressStatusMismatch,
			fmt.Sprintf("Progress is %.4g%% but status is %q; expected %q", progress, canonical, domain.StatusCompleted),
			progressRaw))
	}
	if canonical == domain.StatusCompleted && progress == 0 {
		findings = append(findings, finding(domain.FieldStatus, domain.SeverityWarning,
			domain.CodeStatusProgressMismatch,
			"Status is completed but progress is 0%; one of the two is stale",
			statusRaw))
	}

	return findings
}

// SubtaskWeightFindings validates the subtask weight distribution of a row:
// the weights must not exceed 100 in total, and a very low total across
// multiple subtasks usually means the remainder was lost in the export.
func SubtaskWeightFindings(mapped domain.MappedRow) []domain.Finding {
	raw, ok := mapped[domain.FieldSubtaskWeights]
	if !ok || isBlank(raw) {
		return nil
	}

	weights := subtaskWeights(raw)
	if len(weights) == 0 {
		return nil
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}

	switch {
	case sum > 100:
		return []domain.Finding{finding(domain.FieldSubtaskWeights, domain.SeverityError,
			domain.CodeSubtaskWeightsExceed100,
			fmt.Sprintf("Subtask weights add up to %.4g; the total cannot exceed 100", sum),
			raw)}
	case sum < 50 && len(weights) > 1:
		return []domain.Finding{finding(domain.FieldSubtaskWeights, domain.SeverityWarning,
			domain.CodeSubtaskWeightsLow,
			fmt.Sprintf("Subtask weights add up to only %.4g across %d subtasks; verify none are missing", sum, len(weights)),
			raw)}
	}

	return nil
}

// subtaskWeights extracts the numeric weights from a cell holding either a
// delimited string ("40;30;30") or a slice of values. Semicolons take
// precedence over commas so decimal-comma locales can still delimit lists.
func subtaskWeights(raw any) []float64 {
	var parts []any

	switch v := raw.(type) {
	case []any:
		parts = v
	case []float64:
		for _, f := range v {
			parts = append(parts, f)
		}
	case string:
		sep := ","
		if strings.Contains(v, ";") {
			sep = ";"
		}
		for _, p := range strings.Split(v, sep) {
			parts = append(parts, strings.TrimSpace(p))
		}
	default:
		parts = []any{v}
	}

	weights := make([]float64, 0, len(parts))
	for _, p := range parts {
		if isBlank(p) {
			continue
		}
		if w, outcome := toFloat(p); outcome == parsedOK {
			weights = append(weights, w)
		}
	}
	return weights
}

// MoneyValue reads and parses a money field from a mapped row.
func MoneyValue(mapped domain.MappedRow, field string) (float64, bool) {
	raw, ok := mapped[field]
	if !ok || isBlank(raw) {
		return 0, false
	}
	amount, outcome := parseCurrency(raw)
	return amount, outcome == parsedOK
}

// numberValue reads and parses a plain numeric field from a mapped row.
func numberValue(mapped domain.MappedRow, field string) (float64, bool) {
	raw, ok := mapped[field]
	if !ok || isBlank(raw) {
		return 0, false
	}
	n, outcome := toFloat(raw)
	return n, outcome == parsedOK
}
