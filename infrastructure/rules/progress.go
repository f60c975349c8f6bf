package rules

import (
	"fmt"
	"strings"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

var _ ports.FieldRule = ProgressRule{}

// ProgressRule validates the progress field: numeric or percent-suffixed
// input, configurable bounds, and the over-100 advisory band between 100
// and the configured maximum.
type ProgressRule struct{}

// Field returns the semantic field name this rule owns.
func (ProgressRule) Field() string { return domain.FieldProgress }

// Evaluate checks a single progress cell.
func (ProgressRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		if ctx.Rules.ProgressRequired {
			return []domain.Finding{finding(domain.FieldProgress, domain.SeverityError,
				domain.CodeProgressRequired, "Progress is required", value)}
		}
		return nil
	}

	progress, outcome := parsePercentValue(value)
	switch outcome {
	case parseBadString:
		return []domain.Finding{finding(domain.FieldProgress, domain.SeverityError,
			domain.CodeProgressInvalidFormat,
			fmt.Sprintf("Progress %q is not a number or percentage", value), value)}
	case parseBadType:
		return []domain.Finding{finding(domain.FieldProgress, domain.SeverityError,
			domain.CodeProgressNotNumeric, "Progress must be numeric", value)}
	}

	rules := ctx.Rules
	switch {
	case progress < 0 && !rules.AllowNegativeProgress:
		f := finding(domain.FieldProgress, domain.SeverityError, domain.CodeProgressNegative,
			fmt.Sprintf("Progress cannot be negative (got %.4g)", progress), value)
		f.SuggestedValue = 0.0
		return []domain.Finding{f}
	case progress > rules.MaxProgress:
		f := finding(domain.FieldProgress, domain.SeverityError, domain.CodeProgressExceedsMax,
			fmt.Sprintf("Progress %.4g exceeds the maximum of %.4g", progress, rules.MaxProgress), value)
		f.SuggestedValue = rules.MaxProgress
		return []domain.Finding{f}
	case progress > 100:
		return []domain.Finding{finding(domain.FieldProgress, domain.SeverityWarning,
			domain.CodeProgressOver100,
			fmt.Sprintf("Progress %.4g is over 100%%; verify this is intentional", progress), value)}
	}

	return nil
}

// parsePercentValue converts a progress cell to float64, stripping a
// trailing percent sign from string input.
func parsePercentValue(v any) (float64, parseOutcome) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "%")
		return toFloat(strings.TrimSpace(s))
	}
	return toFloat(v)
}
