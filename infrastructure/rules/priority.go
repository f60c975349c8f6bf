package rules

import (
	"fmt"
	"strings"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
	"github.com/stratix-platform/importcheck/internal/similarity"
)

var _ ports.FieldRule = PriorityRule{}

// PriorityRule validates the optional priority field against the canonical
// priority set, converting localized synonyms via the configured lexicon.
type PriorityRule struct{}

// Field returns the semantic field name this rule owns.
func (PriorityRule) Field() string { return domain.FieldPriority }

// Evaluate checks a single priority cell.
func (PriorityRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		return nil
	}

	raw, isText := stringValue(value)
	if !isText {
		f := finding(domain.FieldPriority, domain.SeverityWarning, domain.CodePriorityUnknown,
			fmt.Sprintf("Priority %v is not recognized", value), value)
		f.SuggestedValue = domain.PriorityMedium
		return []domain.Finding{f}
	}

	folded := similarity.Fold(strings.TrimSpace(raw))
	canonical, exact, alias := ctx.Rules.Lexicon.CanonicalPriority(folded)
	switch {
	case exact:
		return nil
	case alias:
		f := finding(domain.FieldPriority, domain.SeverityInfo, domain.CodePriorityAliasConversion,
			fmt.Sprintf("Priority %q will be converted to %q", raw, canonical), value)
		f.SuggestedValue = canonical
		return []domain.Finding{f}
	default:
		f := finding(domain.FieldPriority, domain.SeverityWarning, domain.CodePriorityUnknown,
			fmt.Sprintf("Priority %q is not recognized", raw), value)
		f.SuggestedValue = domain.PriorityMedium
		return []domain.Finding{f}
	}
}
