package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratix-platform/importcheck/internal/domain"
)

func TestInitiativeRule(t *testing.T) {
	tests := []struct {
		name         string
		value        any
		wantCode     string
		wantSeverity domain.Severity
	}{
		{name: "reasonable title passes", value: "Expand the partner network"},
		{
			name:         "blank title is required",
			value:        "  ",
			wantCode:     domain.CodeInitiativeRequired,
			wantSeverity: domain.SeverityError,
		},
		{
			name:         "non-text title is required",
			value:        42,
			wantCode:     domain.CodeInitiativeRequired,
			wantSeverity: domain.SeverityError,
		},
		{
			name:         "very short title",
			value:        "Init",
			wantCode:     domain.CodeInitiativeTooShort,
			wantSeverity: domain.SeverityWarning,
		},
		{
			name:         "very long title",
			value:        strings.Repeat("initiative ", 20),
			wantCode:     domain.CodeInitiativeTooLong,
			wantSeverity: domain.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := InitiativeRule{}.Evaluate(tt.value, newTestContext())

			if tt.wantCode == "" {
				assert.Empty(t, findings)
				return
			}

			require.Len(t, findings, 1)
			assert.Equal(t, tt.wantCode, findings[0].Code)
			assert.Equal(t, tt.wantSeverity, findings[0].Severity)
		})
	}
}

func TestInitiativeRulePotentialDuplicate(t *testing.T) {
	// The test tenant already has "Improve customer onboarding".
	findings := InitiativeRule{}.Evaluate("Improve customer onboardin", newTestContext())

	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeInitiativePotentialDuplicate, findings[0].Code)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.Equal(t, []string{"Improve customer onboarding"}, findings[0].Suggestions)
}

func TestInitiativeRuleDissimilarTitleIsNotADuplicate(t *testing.T) {
	assert.Empty(t, InitiativeRule{}.Evaluate("Launch the referral program", newTestContext()))
}

func TestTextRule(t *testing.T) {
	rule := NewTextRule(domain.FieldDescription)

	t.Run("plain text passes", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate("A short description", newTestContext()))
	})

	t.Run("non-text cells are ignored", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(42, newTestContext()))
	})

	t.Run("stray whitespace is trimmed", func(t *testing.T) {
		findings := rule.Evaluate("  padded  ", newTestContext())

		require.Len(t, findings, 1)
		assert.Equal(t, domain.CodeTextWhitespace, findings[0].Code)
		assert.Equal(t, domain.SeverityInfo, findings[0].Severity)
		assert.Equal(t, "padded", findings[0].SuggestedValue)
	})

	t.Run("overlong text is flagged", func(t *testing.T) {
		findings := rule.Evaluate(strings.Repeat("x", 501), newTestContext())

		require.Len(t, findings, 1)
		assert.Equal(t, domain.CodeTextTooLong, findings[0].Code)
		assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	})
}
