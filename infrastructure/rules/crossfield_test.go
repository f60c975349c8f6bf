package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratix-platform/importcheck/internal/domain"
)

func TestCrossFieldBudgetVariance(t *testing.T) {
	tests := []struct {
		name   string
		budget any
		cost   any
		want   bool
	}{
		{"within tolerance", "1000", "1100", false},
		{"cost far above budget", "1000", "2000", true},
		{"cost far below budget", "1000", "100", true},
		{"missing cost", "1000", "", false},
		{"missing budget", "", "500", false},
		{"zero budget is skipped", "0", "500", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := domain.MappedRow{
				domain.FieldBudget:     tt.budget,
				domain.FieldActualCost: tt.cost,
			}

			findings := CrossFieldFindings(mapped, newTestContext())

			if !tt.want {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, domain.CodeBudgetVarianceHigh, findings[0].Code)
			assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
		})
	}
}

func TestCrossFieldHoursOverrun(t *testing.T) {
	t.Run("double the estimate is still fine", func(t *testing.T) {
		mapped := domain.MappedRow{
			domain.FieldEstimatedHours: "10",
			domain.FieldActualHours:    "20",
		}
		assert.Empty(t, CrossFieldFindings(mapped, newTestContext()))
	})

	t.Run("beyond double is an overrun", func(t *testing.T) {
		mapped := domain.MappedRow{
			domain.FieldEstimatedHours: "10",
			domain.FieldActualHours:    "25",
		}

		findings := CrossFieldFindings(mapped, newTestContext())
		require.Len(t, findings, 1)
		assert.Equal(t, domain.CodeHoursOverrun, findings[0].Code)
		assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	})
}

func TestCrossFieldKPIConsistency(t *testing.T) {
	t.Run("full progress without completed status", func(t *testing.T) {
		mapped := domain.MappedRow{
			domain.FieldProgress: "100",
			domain.FieldStatus:   "in_progress",
		}

		findings := CrossFieldFindings(mapped, newTestContext())
		require.Len(t, findings, 1)
		assert.Equal(t, domain.CodeProgressStatusMismatch, findings[0].Code)
	})

	t.Run("completed status without progress", func(t *testing.T) {
		// Alias statuses resolve before the consistency check.
		mapped := domain.MappedRow{
			domain.FieldProgress: "0",
			domain.FieldStatus:   "Completado",
		}

		findings := CrossFieldFindings(mapped, newTestContext())
		require.Len(t, findings, 1)
		assert.Equal(t, domain.CodeStatusProgressMismatch, findings[0].Code)
	})

	t.Run("consistent pair passes", func(t *testing.T) {
		mapped := domain.MappedRow{
			domain.FieldProgress: "100",
			domain.FieldStatus:   "completed",
		}
		assert.Empty(t, CrossFieldFindings(mapped, newTestContext()))
	})

	t.Run("unknown status is left to the field rule", func(t *testing.T) {
		mapped := domain.MappedRow{
			domain.FieldProgress: "100",
			domain.FieldStatus:   "whatever",
		}
		assert.Empty(t, CrossFieldFindings(mapped, newTestContext()))
	})

	t.Run("disabled check emits nothing", func(t *testing.T) {
		ctx := newTestContext()
		ctx.Rules.CheckKPIConsistency = false

		mapped := domain.MappedRow{
			domain.FieldProgress: "100",
			domain.FieldStatus:   "in_progress",
		}
		assert.Empty(t, CrossFieldFindings(mapped, ctx))
	})
}

func TestSubtaskWeightFindings(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantCode string
	}{
		{name: "weights summing to 100 pass", value: "40;30;30"},
		{name: "comma-delimited weights pass", value: "50,30,20"},
		{name: "slice input passes", value: []float64{60, 40}},
		{name: "blank is optional", value: ""},
		{name: "single low weight passes", value: "30"},
		{name: "weights over 100", value: "40;40;40", wantCode: domain.CodeSubtaskWeightsExceed100},
		{name: "suspiciously low total", value: "10;10", wantCode: domain.CodeSubtaskWeightsLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := SubtaskWeightFindings(domain.MappedRow{domain.FieldSubtaskWeights: tt.value})

			if tt.wantCode == "" {
				assert.Empty(t, findings)
				return
			}

			require.Len(t, findings, 1)
			assert.Equal(t, tt.wantCode, findings[0].Code)
		})
	}

	t.Run("severities", func(t *testing.T) {
		over := SubtaskWeightFindings(domain.MappedRow{domain.FieldSubtaskWeights: "60;60"})
		require.Len(t, over, 1)
		assert.Equal(t, domain.SeverityError, over[0].Severity)

		low := SubtaskWeightFindings(domain.MappedRow{domain.FieldSubtaskWeights: "10;10"})
		require.Len(t, low, 1)
		assert.Equal(t, domain.SeverityWarning, low[0].Severity)
	})
}
