package rules

import (
	"fmt"
	"strings"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
	"github.com/stratix-platform/importcheck/internal/similarity"
)

var _ ports.FieldRule = StatusRule{}

// StatusRule validates the optional status field against the canonical
// status set, converting localized synonyms via the configured lexicon.
type StatusRule struct{}

// Field returns the semantic field name this rule owns.
func (StatusRule) Field() string { return domain.FieldStatus }

// Evaluate checks a single status cell.
func (StatusRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		return nil
	}

	raw, isText := stringValue(value)
	if !isText {
		f := finding(domain.FieldStatus, domain.SeverityWarning, domain.CodeStatusUnknown,
			fmt.Sprintf("Status %v is not recognized", value), value)
		f.SuggestedValue = domain.StatusPlanning
		return []domain.Finding{f}
	}

	folded := similarity.Fold(strings.TrimSpace(raw))
	canonical, exact, alias := ctx.Rules.Lexicon.CanonicalStatus(folded)
	switch {
	case exact:
		return nil
	case alias:
		f := finding(domain.FieldStatus, domain.SeverityInfo, domain.CodeStatusAliasConversion,
			fmt.Sprintf("Status %q will be converted to %q", raw, canonical), value)
		f.SuggestedValue = canonical
		return []domain.Finding{f}
	default:
		f := finding(domain.FieldStatus, domain.SeverityWarning, domain.CodeStatusUnknown,
			fmt.Sprintf("Status %q is not recognized", raw), value)
		f.SuggestedValue = domain.StatusPlanning
		return []domain.Finding{f}
	}
}
