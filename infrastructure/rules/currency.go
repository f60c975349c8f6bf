package rules

import (
	"fmt"
	"math"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

var _ ports.FieldRule = CurrencyRule{}

// CurrencyRule validates money fields (budget, actual cost). Currency
// symbols and separators are stripped before parsing; negative and
// implausibly large magnitudes are flagged for review.
type CurrencyRule struct {
	field string
}

// NewCurrencyRule creates a currency rule bound to one money field.
func NewCurrencyRule(field string) CurrencyRule {
	return CurrencyRule{field: field}
}

// Field returns the semantic field name this rule owns.
func (r CurrencyRule) Field() string { return r.field }

// Evaluate checks a single money cell.
func (r CurrencyRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		if r.field == domain.FieldBudget && ctx.Rules.BudgetRequired {
			return []domain.Finding{finding(r.field, domain.SeverityError,
				domain.CodeBudgetRequired, "Budget is required for your role", value)}
		}
		return nil
	}

	amount, outcome := parseCurrency(value)
	if outcome != parsedOK {
		return []domain.Finding{finding(r.field, domain.SeverityError, domain.CodeCurrencyInvalid,
			fmt.Sprintf("%v is not a valid amount", value), value)}
	}

	switch {
	case amount < 0:
		return []domain.Finding{finding(r.field, domain.SeverityWarning, domain.CodeCurrencyNegative,
			fmt.Sprintf("Amount %.2f is negative; verify this is intentional", amount), value)}
	case math.Abs(amount) >= veryLargeAmount:
		return []domain.Finding{finding(r.field, domain.SeverityWarning, domain.CodeCurrencyVeryLarge,
			fmt.Sprintf("Amount %.4g is unusually large; verify the unit", amount), value)}
	}

	return nil
}
