package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

var _ ports.FieldRule = DateRule{}

// dateLayouts lists the accepted target-date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	time.RFC3339,
}

// DateRule validates the optional target date field. Dates that resolve to
// a moment before the run's clock reading are flagged: a target in the past
// usually means a stale export.
type DateRule struct{}

// Field returns the semantic field name this rule owns.
func (DateRule) Field() string { return domain.FieldTargetDate }

// Evaluate checks a single date cell.
func (DateRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		return nil
	}

	var parsed time.Time
	switch v := value.(type) {
	case time.Time:
		parsed = v
	case string:
		raw := strings.TrimSpace(v)
		var ok bool
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				parsed, ok = t, true
				break
			}
		}
		if !ok {
			code := domain.CodeDateInvalidFormat
			if looksLikeDate(raw) {
				code = domain.CodeDateInvalidValue
			}
			return []domain.Finding{finding(domain.FieldTargetDate, domain.SeverityError, code,
				fmt.Sprintf("%q is not a valid date (expected e.g. 2025-12-31)", raw), value)}
		}
	default:
		return []domain.Finding{finding(domain.FieldTargetDate, domain.SeverityError,
			domain.CodeDateInvalidFormat,
			fmt.Sprintf("%v is not a valid date", value), value)}
	}

	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	if parsed.Before(now) {
		return []domain.Finding{finding(domain.FieldTargetDate, domain.SeverityWarning,
			domain.CodeDateInPast,
			fmt.Sprintf("Target date %s is in the past", parsed.Format("2006-01-02")), value)}
	}

	return nil
}

// looksLikeDate reports whether a string has date shape (digits plus date
// separators) even though it failed to parse, e.g. "2025-13-45". Such
// inputs are invalid values rather than invalid formats.
func looksLikeDate(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '-' && r != '/' && r != ' ' && r != ':' && r != 'T' && r != 'Z' {
			return false
		}
	}
	return true
}
