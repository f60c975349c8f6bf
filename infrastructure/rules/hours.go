package rules

import (
	"fmt"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

var _ ports.FieldRule = HoursRule{}

// HoursRule validates effort fields (estimated hours, actual hours).
type HoursRule struct {
	field string
}

// NewHoursRule creates an hours rule bound to one effort field.
func NewHoursRule(field string) HoursRule {
	return HoursRule{field: field}
}

// Field returns the semantic field name this rule owns.
func (r HoursRule) Field() string { return r.field }

// Evaluate checks a single hours cell.
func (r HoursRule) Evaluate(value any, _ *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		return nil
	}

	hours, outcome := toFloat(value)
	if outcome != parsedOK {
		return []domain.Finding{finding(r.field, domain.SeverityError, domain.CodeHoursInvalid,
			fmt.Sprintf("%v is not a valid number of hours", value), value)}
	}

	switch {
	case hours < 0:
		f := finding(r.field, domain.SeverityError, domain.CodeHoursNegative,
			fmt.Sprintf("Hours cannot be negative (got %.4g)", hours), value)
		f.SuggestedValue = 0.0
		return []domain.Finding{f}
	case hours > veryHighHours:
		return []domain.Finding{finding(r.field, domain.SeverityWarning, domain.CodeHoursVeryHigh,
			fmt.Sprintf("%.4g hours is unusually high; verify the value", hours), value)}
	}

	return nil
}
