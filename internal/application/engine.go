// Package application orchestrates the import validation pipeline: per-row
// validation, batch-level validation, error enrichment, and summary
// statistics.
package application

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

// Package-level validator instance for context validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// Engine is the single public entry point of the import validation engine.
// It sequences row validation, batch validation, error enrichment, and
// summary computation. The engine is stateless with respect to shared
// mutable state and safe for concurrent use across batches.
type Engine struct {
	logger  *zap.Logger
	tracer  trace.Tracer
	metrics ports.MetricsCollector
	workers int

	rows  *rowValidator
	batch batchValidator
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics attaches a metrics collector for operational monitoring.
func WithMetrics(collector ports.MetricsCollector) Option {
	return func(e *Engine) { e.metrics = collector }
}

// WithWorkers bounds how many rows are validated concurrently.
// Values below 1 fall back to the number of CPUs.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates an Engine ready to validate batches.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		tracer:  otel.Tracer("import-validation-engine"),
		workers: runtime.NumCPU(),
		rows:    newRowValidator(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate validates a full import batch and returns the complete report.
// The mapping argument overrides the context's column mapping when
// non-empty, matching how callers hold the mapping separately from the
// reference data.
//
// Rows are validated concurrently with a bounded worker pool; result order
// is restored before batch validation, which requires the complete set.
// A malformed context aborts the run with no partial results. An
// unexpected failure inside the pipeline is wrapped and returned as a
// single top-level error.
func (e *Engine) Evaluate(
	ctx context.Context,
	rawRows []domain.RawRow,
	mapping domain.ColumnMapping,
	vctx *domain.ValidationContext,
) (report *domain.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = domain.NewRunError("pipeline", fmt.Errorf("%v", r))
		}
	}()

	runCtx, err := e.prepareContext(mapping, vctx)
	if err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "Engine.Evaluate",
		trace.WithAttributes(
			attribute.Int("import.rows", len(rawRows)),
			attribute.String("import.tenant_id", runCtx.TenantID),
			attribute.String("import.role", string(runCtx.Role)),
		),
	)
	defer span.End()

	start := time.Now()
	e.logger.Info("starting import validation",
		zap.Int("rows", len(rawRows)),
		zap.String("tenant_id", runCtx.TenantID),
		zap.String("role", string(runCtx.Role)),
	)

	validated, err := e.validateRows(ctx, rawRows, runCtx)
	if err != nil {
		span.RecordError(err)
		return nil, domain.NewRunError("row_validation", err)
	}

	global := e.batch.ValidateBatch(validated)
	enriched := newEnricher(runCtx.ColumnMapping).Enrich(validated, global)
	summary := buildSummary(validated, enriched, time.Since(start))

	span.SetAttributes(
		attribute.Int("import.valid_rows", summary.ValidRows),
		attribute.Int("import.invalid_rows", summary.InvalidRows),
		attribute.Float64("import.average_confidence", summary.AverageConfidence),
	)
	e.recordMetrics(summary, time.Since(start))
	e.logger.Info("import validation finished",
		zap.Int("valid_rows", summary.ValidRows),
		zap.Int("invalid_rows", summary.InvalidRows),
		zap.Int("errors", summary.ErrorCount),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &domain.Report{
		RunID:          uuid.NewString(),
		ValidatedRows:  validated,
		GlobalFindings: global,
		Errors:         enriched,
		Summary:        summary,
	}, nil
}

// prepareContext checks the caller-supplied context and derives the
// read-only copy used for the run. Context problems abort the whole run:
// reference data cannot be trusted when the context is malformed.
func (e *Engine) prepareContext(
	mapping domain.ColumnMapping,
	vctx *domain.ValidationContext,
) (*domain.ValidationContext, error) {
	if vctx == nil {
		return nil, domain.ErrInvalidContext
	}

	runCtx := *vctx
	if len(mapping) > 0 {
		runCtx.ColumnMapping = mapping
	}
	if len(runCtx.ColumnMapping) == 0 {
		return nil, domain.ErrEmptyMapping
	}
	if runCtx.Now.IsZero() {
		runCtx.Now = time.Now()
	}

	if err := validate.Struct(&runCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidContext, err)
	}

	return &runCtx, nil
}

// validateRows fans row validation out over a bounded worker pool and
// restores input order in the result slice. Rows have no inter-row
// dependencies, so slots can be written without locking.
func (e *Engine) validateRows(
	ctx context.Context,
	rawRows []domain.RawRow,
	runCtx *domain.ValidationContext,
) ([]domain.ValidatedRow, error) {
	validated := make([]domain.ValidatedRow, len(rawRows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, raw := range rawRows {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Row indices are 1-based and stable across the pipeline.
			validated[i] = e.rows.ValidateRow(raw, i+1, runCtx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return validated, nil
}

// buildSummary computes the batch statistics returned to the caller.
func buildSummary(
	rows []domain.ValidatedRow,
	enriched []domain.EnrichedError,
	elapsed time.Duration,
) domain.Summary {
	summary := domain.Summary{
		TotalRows:        len(rows),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}

	confidenceSum := 0
	for _, row := range rows {
		confidenceSum += row.Confidence
		if row.IsValid {
			summary.ValidRows++
		} else {
			summary.InvalidRows++
		}
		if row.HasWarnings {
			summary.RowsWithWarnings++
		}
		if row.HasInfos {
			summary.RowsWithInfos++
		}
	}
	if len(rows) > 0 {
		avg := float64(confidenceSum) / float64(len(rows))
		summary.AverageConfidence = math.Round(avg*100) / 100
	}

	for _, enrichedErr := range enriched {
		if enrichedErr.Severity == domain.SeverityError {
			summary.ErrorCount++
		}
	}
	summary.TopCodes = topCodes(enriched, 10)

	return summary
}

// topCodes ranks codes by frequency across all enriched errors, breaking
// ties lexically for determinism.
func topCodes(enriched []domain.EnrichedError, n int) []domain.CodeCount {
	if len(enriched) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, e := range enriched {
		counts[e.Code]++
	}

	ranked := make([]domain.CodeCount, 0, len(counts))
	for code, count := range counts {
		ranked = append(ranked, domain.CodeCount{
			Code:    code,
			Count:   count,
			Percent: math.Round(float64(count)/float64(len(enriched))*10000) / 100,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Code < ranked[j].Code
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// recordMetrics forwards run statistics to the configured collector.
func (e *Engine) recordMetrics(summary domain.Summary, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}

	labels := map[string]string{"component": "engine"}
	e.metrics.RecordLatency("import_run", elapsed, labels)
	e.metrics.RecordCounter("import_rows_validated", float64(summary.TotalRows), labels)
	e.metrics.RecordCounter("import_rows_invalid", float64(summary.InvalidRows), labels)
	e.metrics.RecordCounter("import_errors_emitted", float64(summary.ErrorCount), labels)
	e.metrics.RecordGauge("import_average_confidence", summary.AverageConfidence, labels)
}
