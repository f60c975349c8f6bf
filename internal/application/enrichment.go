package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stratix-platform/importcheck/internal/domain"
)

// enricher converts raw findings into the uniform, categorized error
// records consumed by the UI: category, fix actions, documentation, and the
// original column name resolved through the mapping.
type enricher struct {
	// fieldToColumn is the reverse of the active column mapping. When
	// several columns map to the same field the lexically first column
	// wins, keeping enrichment deterministic.
	fieldToColumn map[string]string
}

func newEnricher(mapping domain.ColumnMapping) *enricher {
	columns := make([]string, 0, len(mapping))
	for column := range mapping {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	reverse := make(map[string]string, len(mapping))
	for _, column := range columns {
		field := mapping[column]
		if _, taken := reverse[field]; !taken {
			reverse[field] = column
		}
	}

	return &enricher{fieldToColumn: reverse}
}

// Enrich flattens every row-level and batch-level finding into the
// externally consumed enriched error list. IDs are deterministic so two
// runs over identical input produce identical lists.
func (e *enricher) Enrich(rows []domain.ValidatedRow, global []domain.GlobalFinding) []domain.EnrichedError {
	var errors []domain.EnrichedError

	for _, row := range rows {
		perField := make(map[string]int, len(row.Findings))
		for _, f := range row.Findings {
			perField[f.Field]++
			errors = append(errors, e.enrichFinding(row.RowIndex, f, perField[f.Field]))
		}
	}

	perKind := make(map[string]int, len(global))
	for _, g := range global {
		perKind[g.Kind]++
		errors = append(errors, enrichGlobalFinding(g, perKind[g.Kind]))
	}

	return errors
}

// enrichFinding builds the enriched record for one row-level finding.
func (e *enricher) enrichFinding(rowIndex int, f domain.Finding, seq int) domain.EnrichedError {
	enriched := domain.EnrichedError{
		ID:             fmt.Sprintf("row%d-%s-%d", rowIndex, f.Field, seq),
		RowIndex:       rowIndex,
		Field:          f.Field,
		Column:         e.fieldToColumn[f.Field],
		Severity:       f.Severity,
		Category:       categoryForCode(f.Code),
		Code:           f.Code,
		Message:        f.Message,
		SuggestedValue: f.SuggestedValue,
		FixActions:     fixActionsForFinding(f),
	}

	if doc, ok := documentation[f.Code]; ok {
		enriched.Documentation = &doc
	}

	return enriched
}

// enrichGlobalFinding builds the enriched record for one batch-level
// finding. Batch errors carry row index 0.
func enrichGlobalFinding(g domain.GlobalFinding, seq int) domain.EnrichedError {
	code := strings.ToUpper(g.Kind)

	enriched := domain.EnrichedError{
		ID:         fmt.Sprintf("batch-%s-%d", g.Kind, seq),
		RowIndex:   0,
		Severity:   g.Severity,
		Category:   categoryForCode(code),
		Code:       code,
		Message:    g.Message,
		FixActions: fixActionsForGlobal(g),
	}

	if doc, ok := documentation[code]; ok {
		enriched.Documentation = &doc
	}

	return enriched
}

// categories maps each machine code to its error category. Codes absent
// from the table fall back to suffix rules and finally to data-type.
var categories = map[string]domain.Category{
	domain.CodeAreaFuzzyMatch:       domain.CategoryReferentialIntegrity,
	domain.CodeAreaNotFound:         domain.CategoryReferentialIntegrity,
	domain.CodeAreaPermissionDenied: domain.CategoryPermission,

	domain.CodeInitiativeTooShort: domain.CategoryFormat,
	domain.CodeInitiativeTooLong:  domain.CategoryFormat,

	domain.CodeProgressInvalidFormat: domain.CategoryFormat,
	domain.CodeProgressNotNumeric:    domain.CategoryDataType,
	domain.CodeProgressNegative:      domain.CategoryBusinessLogic,
	domain.CodeProgressExceedsMax:    domain.CategoryBusinessLogic,
	domain.CodeProgressOver100:       domain.CategoryBusinessLogic,

	domain.CodeStatusAliasConversion:   domain.CategoryFormat,
	domain.CodeStatusUnknown:           domain.CategoryDataType,
	domain.CodePriorityAliasConversion: domain.CategoryFormat,
	domain.CodePriorityUnknown:         domain.CategoryDataType,

	domain.CodeCurrencyInvalid:   domain.CategoryDataType,
	domain.CodeCurrencyNegative:  domain.CategoryBusinessLogic,
	domain.CodeCurrencyVeryLarge: domain.CategoryBusinessLogic,

	domain.CodeHoursInvalid:  domain.CategoryDataType,
	domain.CodeHoursNegative: domain.CategoryBusinessLogic,
	domain.CodeHoursVeryHigh: domain.CategoryBusinessLogic,

	domain.CodeDateInvalidFormat: domain.CategoryFormat,
	domain.CodeDateInvalidValue:  domain.CategoryFormat,
	domain.CodeDateInPast:        domain.CategoryBusinessLogic,

	domain.CodeWeightInvalid:    domain.CategoryDataType,
	domain.CodeWeightOutOfRange: domain.CategoryBusinessLogic,

	domain.CodeTextWhitespace: domain.CategoryFormat,
	domain.CodeTextTooLong:    domain.CategoryFormat,

	domain.CodeBudgetVarianceHigh:     domain.CategoryBusinessLogic,
	domain.CodeHoursOverrun:           domain.CategoryBusinessLogic,
	domain.CodeProgressStatusMismatch: domain.CategoryBusinessLogic,
	domain.CodeStatusProgressMismatch: domain.CategoryBusinessLogic,

	domain.CodeSubtaskWeightsExceed100: domain.CategoryBusinessLogic,
	domain.CodeSubtaskWeightsLow:       domain.CategoryBusinessLogic,

	"DUPLICATE_DETECTION": domain.CategoryDuplicate,
	"AREA_CONSISTENCY":    domain.CategoryReferentialIntegrity,
	"BUDGET_VARIANCE":     domain.CategoryBusinessLogic,
}

// categoryForCode derives the error category deterministically from a
// machine code.
func categoryForCode(code string) domain.Category {
	if category, ok := categories[code]; ok {
		return category
	}
	switch {
	case strings.HasSuffix(code, "_POTENTIAL_DUPLICATE"):
		return domain.CategoryDuplicate
	case strings.HasSuffix(code, "_REQUIRED"), code == domain.CodeRequiredFieldMissing:
		return domain.CategoryMissingData
	default:
		return domain.CategoryDataType
	}
}

// fixActionsForFinding generates the remediation options for a row-level
// finding. A universal skip-row action is appended whenever the finding
// does not block the row on its own.
func fixActionsForFinding(f domain.Finding) []domain.FixAction {
	var actions []domain.FixAction

	switch f.Code {
	case domain.CodeAreaFuzzyMatch:
		actions = append(actions, domain.FixAction{
			ID:          "use-suggested-area",
			Label:       "Use suggested area",
			Description: fmt.Sprintf("Replace the area with %v", f.SuggestedValue),
			Kind:        domain.FixReplaceValue,
			Confidence:  85,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeAreaNotFound:
		if len(f.Suggestions) > 0 {
			actions = append(actions, domain.FixAction{
				ID:          "use-suggested-area",
				Label:       "Use closest existing area",
				Description: fmt.Sprintf("Replace the area with %q", f.Suggestions[0]),
				Kind:        domain.FixReplaceValue,
				Confidence:  85,
				Preview:     f.Suggestions[0],
			})
		}
	case domain.CodeAreaPermissionDenied:
		actions = append(actions, domain.FixAction{
			ID:          "use-own-area",
			Label:       "Use your assigned area",
			Description: fmt.Sprintf("Replace the area with %v", f.SuggestedValue),
			Kind:        domain.FixReplaceValue,
			Confidence:  80,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeProgressExceedsMax:
		actions = append(actions, domain.FixAction{
			ID:          "cap-progress",
			Label:       "Cap at maximum",
			Description: fmt.Sprintf("Set progress to the maximum of %v", f.SuggestedValue),
			Kind:        domain.FixReplaceValue,
			Confidence:  90,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeProgressNegative, domain.CodeHoursNegative:
		actions = append(actions, domain.FixAction{
			ID:          "set-zero",
			Label:       "Set to zero",
			Description: "Replace the negative value with 0",
			Kind:        domain.FixReplaceValue,
			Confidence:  90,
			Preview:     0,
		})
	case domain.CodeRequiredFieldMissing, domain.CodeProgressRequired, domain.CodeBudgetRequired:
		actions = append(actions, domain.FixAction{
			ID:          "apply-default",
			Label:       "Apply default value",
			Description: "Fill the field with the tenant default",
			Kind:        domain.FixApplyDefault,
			Confidence:  70,
		})
	case domain.CodeStatusAliasConversion, domain.CodePriorityAliasConversion:
		actions = append(actions, domain.FixAction{
			ID:          "apply-canonical",
			Label:       "Convert to canonical value",
			Description: fmt.Sprintf("Replace the value with %v", f.SuggestedValue),
			Kind:        domain.FixReplaceValue,
			Confidence:  95,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeStatusUnknown, domain.CodePriorityUnknown:
		actions = append(actions, domain.FixAction{
			ID:          "apply-default",
			Label:       fmt.Sprintf("Use %v", f.SuggestedValue),
			Description: fmt.Sprintf("Replace the unrecognized value with %v", f.SuggestedValue),
			Kind:        domain.FixApplyDefault,
			Confidence:  70,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeWeightOutOfRange:
		actions = append(actions, domain.FixAction{
			ID:          "clamp-weight",
			Label:       "Clamp into range",
			Description: fmt.Sprintf("Set the weight to %v", f.SuggestedValue),
			Kind:        domain.FixReplaceValue,
			Confidence:  85,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeTextWhitespace:
		actions = append(actions, domain.FixAction{
			ID:          "trim-whitespace",
			Label:       "Trim whitespace",
			Description: "Remove the leading and trailing whitespace",
			Kind:        domain.FixReplaceValue,
			Confidence:  95,
			Preview:     f.SuggestedValue,
		})
	case domain.CodeInitiativePotentialDuplicate:
		actions = append(actions, domain.FixAction{
			ID:          "merge-duplicate",
			Label:       "Merge with existing initiative",
			Description: "Update the existing initiative instead of creating a new one",
			Kind:        domain.FixMergeDuplicate,
			Confidence:  60,
		})
	case domain.CodeDateInPast:
		actions = append(actions, domain.FixAction{
			ID:          "clear-date",
			Label:       "Clear the date",
			Description: "Remove the stale target date",
			Kind:        domain.FixClearField,
			Confidence:  65,
		})
	}

	if f.Severity != domain.SeverityError {
		actions = append(actions, skipRowAction())
	}

	return actions
}

// fixActionsForGlobal generates the remediation options for a batch-level
// finding.
func fixActionsForGlobal(g domain.GlobalFinding) []domain.FixAction {
	var actions []domain.FixAction

	if g.Kind == domain.KindDuplicateDetection {
		actions = append(actions, domain.FixAction{
			ID:          "merge-duplicates",
			Label:       "Merge duplicate rows",
			Description: "Keep one row per (area, initiative) pair and merge the rest",
			Kind:        domain.FixMergeDuplicate,
			Confidence:  60,
		})
	}

	if g.Severity != domain.SeverityError {
		actions = append(actions, skipRowAction())
	}

	return actions
}

// skipRowAction is the universal opt-out attached to non-blocking errors.
func skipRowAction() domain.FixAction {
	return domain.FixAction{
		ID:          "skip-row",
		Label:       "Skip this row",
		Description: "Exclude the row from the import and continue",
		Kind:        domain.FixSkipRow,
		Confidence:  100,
	}
}

// documentation holds the static help snippets attached to well-known
// codes. Unknown codes simply carry no documentation.
var documentation = map[string]domain.Documentation{
	domain.CodeAreaNotFound: {
		Title:       "Area not found",
		Description: "Every row must reference an area that already exists in your organization. Check the spelling against the areas list.",
		Examples:    []string{"Sales", "Marketing", "Operaciones"},
	},
	domain.CodeAreaFuzzyMatch: {
		Title:       "Area name close to an existing area",
		Description: "The area name is almost identical to an existing one; accepting the suggestion avoids creating an accidental duplicate area.",
	},
	domain.CodeAreaPermissionDenied: {
		Title:       "Area outside your permissions",
		Description: "Your role limits imports to your assigned area. Rows for other areas must be imported by their owners.",
	},
	domain.CodeInitiativePotentialDuplicate: {
		Title:       "Possible duplicate initiative",
		Description: "An initiative with a very similar title already exists. Importing it again would split progress tracking across two records.",
	},
	domain.CodeProgressExceedsMax: {
		Title:       "Progress above the allowed maximum",
		Description: "Progress is expressed as a percentage. Values above the configured maximum are rejected; values between 100 and the maximum are allowed but flagged.",
		Examples:    []string{"75", "100", "120%"},
	},
	domain.CodeRequiredFieldMissing: {
		Title:       "Required field missing",
		Description: "Initiative and area are always required; your role configuration may require additional fields such as budget or progress.",
	},
	domain.CodeSubtaskWeightsExceed100: {
		Title:       "Subtask weights exceed 100",
		Description: "Subtask weights express each subtask's share of the initiative and cannot add up to more than 100.",
		Examples:    []string{"40;30;30", "50;50"},
	},
	domain.CodeStatusUnknown: {
		Title:       "Unrecognized status",
		Description: "Statuses are matched against the canonical set and the locale alias table. Unrecognized values default to planning.",
		Examples:    []string{"planning", "in_progress", "completado"},
	},
	domain.CodeBudgetVarianceHigh: {
		Title:       "High budget variance",
		Description: "The actual cost deviates from budget beyond the configured tolerance. Verify both values before committing.",
	},
	"DUPLICATE_DETECTION": {
		Title:       "Duplicate rows in the batch",
		Description: "Two or more rows in this file describe the same initiative in the same area. Only one can be committed.",
	},
	"BUDGET_VARIANCE": {
		Title:       "Batch budget variance",
		Description: "A large share of the rows carrying both budget and actual cost deviate significantly; this often indicates mixed currencies or stale exports.",
	},
}
