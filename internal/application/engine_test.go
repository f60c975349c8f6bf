package application

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/stratix-platform/importcheck/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testBatch() []domain.RawRow {
	return []domain.RawRow{
		{
			"Área":       "Sales",
			"Iniciativa": "Launch the referral program",
			"Progreso":   "45",
			"Estado":     "in_progress",
		},
		{
			"Área":       "Sals",
			"Iniciativa": "Expand the partner network",
			"Progreso":   "150%",
			"Estado":     "Completado",
		},
		{
			"Área":       "Zzzzz",
			"Iniciativa": "Q3 pipeline review",
			"Progreso":   "200",
		},
		{
			"Área":       "Sales",
			"Iniciativa": "Launch the referral program",
		},
	}
}

func TestEngineEvaluate(t *testing.T) {
	engine := NewEngine(
		WithLogger(zaptest.NewLogger(t)),
		WithWorkers(2),
	)

	report, err := engine.Evaluate(context.Background(), testBatch(), nil, testValidationContext())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.ValidatedRows, 4)

	// Rows keep their input order and 1-based indices.
	for i, row := range report.ValidatedRows {
		assert.Equal(t, i+1, row.RowIndex)
	}

	assert.True(t, report.ValidatedRows[0].IsValid)
	assert.True(t, report.ValidatedRows[1].IsValid, "fuzzy area and over-100 progress only warn")
	assert.False(t, report.ValidatedRows[2].IsValid, "unknown area and excessive progress block")

	// Rows 1 and 4 share (area, title): the batch check reports them.
	kinds := make([]string, 0, len(report.GlobalFindings))
	for _, g := range report.GlobalFindings {
		kinds = append(kinds, g.Kind)
	}
	assert.Contains(t, kinds, domain.KindDuplicateDetection)
	assert.Contains(t, kinds, domain.KindAreaConsistency)

	summary := report.Summary
	assert.Equal(t, 4, summary.TotalRows)
	assert.Equal(t, summary.TotalRows, summary.ValidRows+summary.InvalidRows)
	assert.Positive(t, summary.ErrorCount)
	assert.NotEmpty(t, summary.TopCodes)
	assert.GreaterOrEqual(t, summary.AverageConfidence, 0.0)
	assert.LessOrEqual(t, summary.AverageConfidence, 100.0)
}

func TestEngineEvaluateIsDeterministic(t *testing.T) {
	engine := NewEngine(WithWorkers(4))
	vctx := testValidationContext()

	first, err := engine.Evaluate(context.Background(), testBatch(), nil, vctx)
	require.NoError(t, err)
	second, err := engine.Evaluate(context.Background(), testBatch(), nil, vctx)
	require.NoError(t, err)

	diff := cmp.Diff(first, second,
		cmpopts.IgnoreFields(domain.Report{}, "RunID"),
		cmpopts.IgnoreFields(domain.Summary{}, "ProcessingTimeMs"),
	)
	assert.Empty(t, diff, "identical input must produce identical reports")
}

func TestEngineEvaluateContextValidation(t *testing.T) {
	engine := NewEngine()

	t.Run("nil context", func(t *testing.T) {
		_, err := engine.Evaluate(context.Background(), testBatch(), nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidContext)
	})

	t.Run("empty mapping", func(t *testing.T) {
		vctx := testValidationContext()
		vctx.ColumnMapping = nil

		_, err := engine.Evaluate(context.Background(), testBatch(), nil, vctx)
		assert.ErrorIs(t, err, domain.ErrEmptyMapping)
	})

	t.Run("missing role", func(t *testing.T) {
		vctx := testValidationContext()
		vctx.Role = ""

		_, err := engine.Evaluate(context.Background(), testBatch(), nil, vctx)
		assert.ErrorIs(t, err, domain.ErrInvalidContext)
	})

	t.Run("mapping argument overrides the context", func(t *testing.T) {
		vctx := testValidationContext()
		vctx.ColumnMapping = nil

		report, err := engine.Evaluate(context.Background(), testBatch(), testMapping(), vctx)
		require.NoError(t, err)
		assert.Len(t, report.ValidatedRows, 4)
	})
}

func TestEngineEvaluateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Evaluate(ctx, testBatch(), nil, testValidationContext())
	require.Error(t, err)

	var runErr *domain.RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, "row_validation", runErr.Stage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineEvaluateEmptyBatch(t *testing.T) {
	report, err := NewEngine().Evaluate(context.Background(), nil, nil, testValidationContext())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.TotalRows)
	assert.Empty(t, report.ValidatedRows)
	assert.Empty(t, report.Errors)
	assert.Zero(t, report.Summary.AverageConfidence)
}

func TestTopCodes(t *testing.T) {
	enriched := []domain.EnrichedError{
		{Code: "A", Severity: domain.SeverityError},
		{Code: "A", Severity: domain.SeverityError},
		{Code: "B", Severity: domain.SeverityWarning},
		{Code: "C", Severity: domain.SeverityWarning},
	}

	ranked := topCodes(enriched, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, domain.CodeCount{Code: "A", Count: 2, Percent: 50}, ranked[0])
	// Ties break lexically.
	assert.Equal(t, "B", ranked[1].Code)
	assert.Equal(t, "C", ranked[2].Code)

	assert.Len(t, topCodes(enriched, 2), 2)
	assert.Nil(t, topCodes(nil, 10))
}
