package application

import (
	"fmt"
	"sort"

	"github.com/stratix-platform/importcheck/infrastructure/rules"
	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

// rowValidator validates one raw row at a time: it applies the column
// mapping, runs every applicable field rule, checks required fields and
// cross-field relationships, and derives the row's confidence score.
// It is stateless apart from the immutable rule registry and safe for
// concurrent use.
type rowValidator struct {
	registry map[string]ports.FieldRule
}

func newRowValidator() *rowValidator {
	return &rowValidator{registry: rules.Registry()}
}

// ValidateRow validates a single raw row. It never panics: an unexpected
// failure while validating this row is converted into a synthetic error
// finding so one bad row cannot abort the batch.
func (rv *rowValidator) ValidateRow(raw domain.RawRow, rowIndex int, ctx *domain.ValidationContext) (row domain.ValidatedRow) {
	mapped := applyMapping(raw, ctx.ColumnMapping)

	defer func() {
		if r := recover(); r != nil {
			row = domain.NewValidatedRow(rowIndex, mapped, []domain.Finding{{
				Severity: domain.SeverityError,
				Code:     domain.CodeRowValidationPanic,
				Message:  fmt.Sprintf("Row could not be validated: %v", r),
			}})
		}
	}()

	findings := rv.requiredFieldFindings(mapped, ctx)

	// Fields are visited in sorted order so findings are deterministic for
	// identical input.
	for _, field := range sortedFields(mapped) {
		rule, ok := rv.registry[field]
		if !ok {
			rule = rules.NewTextRule(field)
		}
		findings = append(findings, rule.Evaluate(mapped[field], ctx)...)
	}

	findings = append(findings, rules.CrossFieldFindings(mapped, ctx)...)

	return domain.NewValidatedRow(rowIndex, mapped, findings)
}

// requiredFieldFindings reports configured required fields that are absent
// or blank.
func (rv *rowValidator) requiredFieldFindings(mapped domain.MappedRow, ctx *domain.ValidationContext) []domain.Finding {
	var findings []domain.Finding

	for _, field := range ctx.Rules.RequiredFields {
		value, present := mapped[field]
		if present && !isBlankValue(value) {
			continue
		}
		findings = append(findings, domain.Finding{
			Field:    field,
			Severity: domain.SeverityError,
			Code:     domain.CodeRequiredFieldMissing,
			Message:  fmt.Sprintf("Required field %q is missing or empty", field),
			Value:    value,
		})
	}

	return findings
}

// applyMapping re-keys a raw row by semantic field name using the active
// column mapping. Columns without a mapping entry are dropped.
func applyMapping(raw domain.RawRow, mapping domain.ColumnMapping) domain.MappedRow {
	mapped := make(domain.MappedRow, len(mapping))
	for column, field := range mapping {
		if value, ok := raw[column]; ok {
			mapped[field] = value
		}
	}
	return mapped
}

// sortedFields returns the mapped field names in lexical order.
func sortedFields(mapped domain.MappedRow) []string {
	fields := make([]string, 0, len(mapped))
	for field := range mapped {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// isBlankValue mirrors the rules package's notion of an empty cell for the
// required-field presence check.
func isBlankValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
