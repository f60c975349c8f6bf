package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

var _ ports.FieldRule = TextRule{}

// TextRule is the fallback rule for generic and unmapped text fields:
// it flags stray whitespace and implausibly long values but never blocks.
type TextRule struct {
	field string
}

// NewTextRule creates a generic text rule bound to one field.
func NewTextRule(field string) TextRule {
	return TextRule{field: field}
}

// Field returns the semantic field name this rule owns.
func (r TextRule) Field() string { return r.field }

// Evaluate checks a single generic text cell.
func (r TextRule) Evaluate(value any, _ *domain.ValidationContext) []domain.Finding {
	s, isText := stringValue(value)
	if !isText {
		return nil
	}

	var findings []domain.Finding

	if trimmed := strings.TrimSpace(s); trimmed != s && trimmed != "" {
		f := finding(r.field, domain.SeverityInfo, domain.CodeTextWhitespace,
			"Value has leading or trailing whitespace and will be trimmed", value)
		f.SuggestedValue = trimmed
		findings = append(findings, f)
	}

	if length := utf8.RuneCountInString(s); length > maxTextLength {
		findings = append(findings, finding(r.field, domain.SeverityWarning, domain.CodeTextTooLong,
			fmt.Sprintf("Value is %d characters long; values over %d characters are truncated in most views", length, maxTextLength),
			value))
	}

	return findings
}
