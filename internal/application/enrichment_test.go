package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratix-platform/importcheck/internal/domain"
)

func TestEnrichRowFindings(t *testing.T) {
	rows := []domain.ValidatedRow{
		validatedRow(3, domain.MappedRow{domain.FieldArea: "Sals"},
			domain.Finding{
				Field:          domain.FieldArea,
				Severity:       domain.SeverityWarning,
				Code:           domain.CodeAreaFuzzyMatch,
				Message:        `Area "Sals" is not an exact match`,
				SuggestedValue: "Sales",
			},
			domain.Finding{
				Field:    domain.FieldArea,
				Severity: domain.SeverityError,
				Code:     domain.CodeAreaNotFound,
			},
		),
	}

	errors := newEnricher(testMapping()).Enrich(rows, nil)
	require.Len(t, errors, 2)

	first := errors[0]
	assert.Equal(t, "row3-area-1", first.ID)
	assert.Equal(t, 3, first.RowIndex)
	assert.Equal(t, domain.FieldArea, first.Field)
	assert.Equal(t, "Área", first.Column)
	assert.Equal(t, domain.CategoryReferentialIntegrity, first.Category)
	assert.Equal(t, "Sales", first.SuggestedValue)
	require.NotNil(t, first.Documentation)

	// The second finding on the same field gets the next sequence number.
	assert.Equal(t, "row3-area-2", errors[1].ID)
}

func TestEnrichGlobalFindings(t *testing.T) {
	global := []domain.GlobalFinding{{
		Kind:         domain.KindDuplicateDetection,
		Severity:     domain.SeverityWarning,
		Message:      "Rows [1 3] contain the same initiative",
		AffectedRows: []int{1, 3},
	}}

	errors := newEnricher(testMapping()).Enrich(nil, global)
	require.Len(t, errors, 1)

	batch := errors[0]
	assert.Equal(t, "batch-duplicate_detection-1", batch.ID)
	assert.Equal(t, 0, batch.RowIndex)
	assert.Empty(t, batch.Field)
	assert.Equal(t, "DUPLICATE_DETECTION", batch.Code)
	assert.Equal(t, domain.CategoryDuplicate, batch.Category)
	require.NotNil(t, batch.Documentation)
}

func TestCategoryForCode(t *testing.T) {
	tests := []struct {
		code string
		want domain.Category
	}{
		{domain.CodeAreaNotFound, domain.CategoryReferentialIntegrity},
		{domain.CodeAreaPermissionDenied, domain.CategoryPermission},
		{domain.CodeRequiredFieldMissing, domain.CategoryMissingData},
		{domain.CodeInitiativeRequired, domain.CategoryMissingData},
		{domain.CodeInitiativePotentialDuplicate, domain.CategoryDuplicate},
		{domain.CodeProgressExceedsMax, domain.CategoryBusinessLogic},
		{domain.CodeDateInvalidFormat, domain.CategoryFormat},
		{domain.CodeTextWhitespace, domain.CategoryFormat},
		{"SOMETHING_NEW", domain.CategoryDataType},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, categoryForCode(tt.code))
		})
	}
}

func TestFixActionsForFinding(t *testing.T) {
	t.Run("fuzzy match offers the suggested area", func(t *testing.T) {
		actions := fixActionsForFinding(domain.Finding{
			Code:           domain.CodeAreaFuzzyMatch,
			Severity:       domain.SeverityWarning,
			SuggestedValue: "Sales",
		})

		require.Len(t, actions, 2)
		assert.Equal(t, "use-suggested-area", actions[0].ID)
		assert.Equal(t, domain.FixReplaceValue, actions[0].Kind)
		assert.Equal(t, "Sales", actions[0].Preview)
		assert.Equal(t, "skip-row", actions[1].ID)
	})

	t.Run("alias conversion is near-certain", func(t *testing.T) {
		actions := fixActionsForFinding(domain.Finding{
			Code:           domain.CodeStatusAliasConversion,
			Severity:       domain.SeverityInfo,
			SuggestedValue: domain.StatusCompleted,
		})

		require.NotEmpty(t, actions)
		assert.Equal(t, "apply-canonical", actions[0].ID)
		assert.Equal(t, 95, actions[0].Confidence)
	})

	t.Run("errors do not get the skip-row escape", func(t *testing.T) {
		actions := fixActionsForFinding(domain.Finding{
			Code:           domain.CodeProgressExceedsMax,
			Severity:       domain.SeverityError,
			SuggestedValue: 150.0,
		})

		require.Len(t, actions, 1)
		assert.Equal(t, "cap-progress", actions[0].ID)
	})

	t.Run("warnings always allow skipping the row", func(t *testing.T) {
		actions := fixActionsForFinding(domain.Finding{
			Code:     domain.CodeHoursVeryHigh,
			Severity: domain.SeverityWarning,
		})

		require.Len(t, actions, 1)
		assert.Equal(t, "skip-row", actions[0].ID)
		assert.Equal(t, domain.FixSkipRow, actions[0].Kind)
	})
}

func TestEnricherReverseMappingIsDeterministic(t *testing.T) {
	// Two columns feed the same field; the lexically first column wins.
	mapping := domain.ColumnMapping{
		"Zona":  domain.FieldArea,
		"Área":  domain.FieldArea,
		"Letra": domain.FieldArea,
	}

	e := newEnricher(mapping)
	assert.Equal(t, "Letra", e.fieldToColumn[domain.FieldArea])
}
