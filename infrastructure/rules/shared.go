// Package rules provides the field rule library of the import validation
// engine: one pure, stateless validation rule per semantic field type,
// plus the cross-field checks that run once per row.
package rules

import (
	"strconv"
	"strings"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

// Thresholds shared across rules.
const (
	// areaFuzzyThreshold is the minimum confidence for treating a
	// non-exact area name as a correctable fuzzy match.
	areaFuzzyThreshold = 0.8

	// titleDuplicateThreshold is the minimum confidence against an existing
	// initiative title for flagging a potential duplicate.
	titleDuplicateThreshold = 0.85

	// maxAreaSuggestions caps how many candidate areas are suggested.
	maxAreaSuggestions = 3

	minTitleLength = 5
	maxTitleLength = 200

	// veryLargeAmount flags currency magnitudes that are almost certainly
	// data-entry mistakes (wrong unit, pasted identifiers).
	veryLargeAmount = 1e12

	veryHighHours = 10000

	minWeight = 0.1
	maxWeight = 3.0

	maxTextLength = 500

	// hoursOverrunRatio is the actual/estimated hours ratio above which a
	// cross-field warning is raised.
	hoursOverrunRatio = 2.0
)

// Registry returns the fixed field-name to rule mapping used by the row
// validator. Fields without a dedicated rule fall through to a TextRule.
func Registry() map[string]ports.FieldRule {
	all := []ports.FieldRule{
		AreaRule{},
		InitiativeRule{},
		ProgressRule{},
		StatusRule{},
		NewCurrencyRule(domain.FieldBudget),
		NewCurrencyRule(domain.FieldActualCost),
		NewHoursRule(domain.FieldEstimatedHours),
		NewHoursRule(domain.FieldActualHours),
		DateRule{},
		PriorityRule{},
		WeightRule{},
	}

	registry := make(map[string]ports.FieldRule, len(all))
	for _, rule := range all {
		registry[rule.Field()] = rule
	}
	return registry
}

// parseOutcome distinguishes why a value failed numeric conversion.
type parseOutcome int

const (
	parsedOK parseOutcome = iota

	// parseBadString means the value was a string that does not encode a
	// number.
	parseBadString

	// parseBadType means the value was neither a number nor a string.
	parseBadType
)

// isBlank reports whether a cell is empty for presence checks: nil, an
// empty string, or a whitespace-only string.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// stringValue extracts a string cell value.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// toFloat converts a cell to float64, accepting native numbers and numeric
// strings (including percent suffixes stripped by the caller).
func toFloat(v any) (float64, parseOutcome) {
	switch n := v.(type) {
	case float64:
		return n, parsedOK
	case float32:
		return float64(n), parsedOK
	case int:
		return float64(n), parsedOK
	case int32:
		return float64(n), parsedOK
	case int64:
		return float64(n), parsedOK
	case string:
		f, err := parseNumber(n)
		if err != nil {
			return 0, parseBadString
		}
		return f, parsedOK
	default:
		return 0, parseBadType
	}
}

// parseNumber parses a numeric string, tolerating both decimal-comma and
// decimal-point input with thousand separators ("1.234,56", "1,234.56").
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(normalizeDecimal(s), 64)
}

// normalizeDecimal rewrites locale-formatted numbers into strconv syntax.
func normalizeDecimal(s string) string {
	s = strings.TrimSpace(s)

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		// The later separator is the decimal mark, the earlier one groups
		// thousands.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		// A single comma followed by one or two digits reads as a decimal
		// mark; anything else reads as thousand grouping.
		if idx := strings.LastIndex(s, ","); strings.Count(s, ",") == 1 &&
			len(s)-idx-1 >= 1 && len(s)-idx-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	return s
}

// currencySymbols lists characters stripped before parsing money cells.
const currencySymbols = "$€£¥"

// parseCurrency converts a money cell to float64 after stripping currency
// symbols and spacing.
func parseCurrency(v any) (float64, parseOutcome) {
	s, ok := v.(string)
	if !ok {
		return toFloat(v)
	}

	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencySymbols, r) || r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	if cleaned == "" {
		return 0, parseBadString
	}
	return toFloat(cleaned)
}

// finding is a small constructor keeping rule bodies compact.
func finding(field string, sev domain.Severity, code, msg string, value any) domain.Finding {
	return domain.Finding{
		Field:    field,
		Severity: sev,
		Code:     code,
		Message:  msg,
		Value:    value,
	}
}
