package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratix-platform/importcheck/internal/domain"
)

func TestStatusRule(t *testing.T) {
	tests := []struct {
		name          string
		value         any
		wantCode      string
		wantSeverity  domain.Severity
		wantSuggested any
	}{
		{name: "canonical status passes", value: "completed"},
		{name: "canonical status is case-insensitive", value: "COMPLETED"},
		{name: "blank is optional", value: ""},
		{
			name:          "spanish alias converts",
			value:         "Completado",
			wantCode:      domain.CodeStatusAliasConversion,
			wantSeverity:  domain.SeverityInfo,
			wantSuggested: domain.StatusCompleted,
		},
		{
			name:          "alias with surrounding whitespace converts",
			value:         " en progreso ",
			wantCode:      domain.CodeStatusAliasConversion,
			wantSeverity:  domain.SeverityInfo,
			wantSuggested: domain.StatusInProgress,
		},
		{
			name:          "unknown status defaults to planning",
			value:         "whatever",
			wantCode:      domain.CodeStatusUnknown,
			wantSeverity:  domain.SeverityWarning,
			wantSuggested: domain.StatusPlanning,
		},
		{
			name:          "non-text status is unknown",
			value:         42,
			wantCode:      domain.CodeStatusUnknown,
			wantSeverity:  domain.SeverityWarning,
			wantSuggested: domain.StatusPlanning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := StatusRule{}.Evaluate(tt.value, newTestContext())

			if tt.wantCode == "" {
				assert.Empty(t, findings)
				return
			}

			require.Len(t, findings, 1)
			assert.Equal(t, tt.wantCode, findings[0].Code)
			assert.Equal(t, tt.wantSeverity, findings[0].Severity)
			assert.Equal(t, tt.wantSuggested, findings[0].SuggestedValue)
		})
	}
}

func TestPriorityRule(t *testing.T) {
	tests := []struct {
		name          string
		value         any
		wantCode      string
		wantSeverity  domain.Severity
		wantSuggested any
	}{
		{name: "canonical priority passes", value: "high"},
		{name: "blank is optional", value: ""},
		{
			name:          "spanish alias converts",
			value:         "Alta",
			wantCode:      domain.CodePriorityAliasConversion,
			wantSeverity:  domain.SeverityInfo,
			wantSuggested: domain.PriorityHigh,
		},
		{
			name:          "normal converts to medium",
			value:         "normal",
			wantCode:      domain.CodePriorityAliasConversion,
			wantSeverity:  domain.SeverityInfo,
			wantSuggested: domain.PriorityMedium,
		},
		{
			name:          "unknown priority defaults to medium",
			value:         "p1",
			wantCode:      domain.CodePriorityUnknown,
			wantSeverity:  domain.SeverityWarning,
			wantSuggested: domain.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := PriorityRule{}.Evaluate(tt.value, newTestContext())

			if tt.wantCode == "" {
				assert.Empty(t, findings)
				return
			}

			require.Len(t, findings, 1)
			assert.Equal(t, tt.wantCode, findings[0].Code)
			assert.Equal(t, tt.wantSeverity, findings[0].Severity)
			assert.Equal(t, tt.wantSuggested, findings[0].SuggestedValue)
		})
	}
}
