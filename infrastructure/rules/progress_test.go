package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratix-platform/importcheck/internal/domain"
)

func TestProgressRule(t *testing.T) {
	tests := []struct {
		name          string
		value         any
		required      bool
		allowNegative bool
		wantCode      string
		wantSeverity  domain.Severity
		wantSuggested any
	}{
		{name: "plain number passes", value: "45"},
		{name: "native float passes", value: 45.0},
		{name: "percent suffix passes", value: "45%"},
		{name: "decimal comma passes", value: "45,5"},
		{name: "blank is fine when optional", value: ""},
		{
			name:         "blank fails when required",
			value:        "",
			required:     true,
			wantCode:     domain.CodeProgressRequired,
			wantSeverity: domain.SeverityError,
		},
		{
			name:         "garbage string",
			value:        "lots",
			wantCode:     domain.CodeProgressInvalidFormat,
			wantSeverity: domain.SeverityError,
		},
		{
			name:         "non-numeric type",
			value:        []string{"45"},
			wantCode:     domain.CodeProgressNotNumeric,
			wantSeverity: domain.SeverityError,
		},
		{
			name:          "negative progress",
			value:         "-5",
			wantCode:      domain.CodeProgressNegative,
			wantSeverity:  domain.SeverityError,
			wantSuggested: 0.0,
		},
		{name: "negative allowed when configured", value: "-5", allowNegative: true},
		{
			name:          "above configured maximum",
			value:         "200",
			wantCode:      domain.CodeProgressExceedsMax,
			wantSeverity:  domain.SeverityError,
			wantSuggested: 150.0,
		},
		{
			name:         "between 100 and the maximum is advisory",
			value:        "150%",
			wantCode:     domain.CodeProgressOver100,
			wantSeverity: domain.SeverityWarning,
		},
		{name: "exactly 100 passes", value: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			ctx.Rules.ProgressRequired = tt.required
			ctx.Rules.AllowNegativeProgress = tt.allowNegative

			findings := ProgressRule{}.Evaluate(tt.value, ctx)

			if tt.wantCode == "" {
				assert.Empty(t, findings)
				return
			}

			require.Len(t, findings, 1)
			assert.Equal(t, tt.wantCode, findings[0].Code)
			assert.Equal(t, tt.wantSeverity, findings[0].Severity)
			if tt.wantSuggested != nil {
				assert.Equal(t, tt.wantSuggested, findings[0].SuggestedValue)
			}
		})
	}
}
