package domain

// Category buckets an enriched error for UI grouping and analytics.
// Every category is derived deterministically from the finding's code.
type Category string

// Enriched error categories.
const (
	CategoryDataType             Category = "data-type"
	CategoryBusinessLogic        Category = "business-logic"
	CategoryReferentialIntegrity Category = "referential-integrity"
	CategoryFormat               Category = "format"
	CategoryMissingData          Category = "missing-data"
	CategoryDuplicate            Category = "duplicate"
	CategoryPermission           Category = "permission"
)

// FixActionKind identifies the automated remediation a FixAction performs.
type FixActionKind string

// Supported fix-action kinds.
const (
	FixReplaceValue   FixActionKind = "replace-value"
	FixClearField     FixActionKind = "clear-field"
	FixApplyDefault   FixActionKind = "apply-default"
	FixMergeDuplicate FixActionKind = "merge-duplicate"
	FixSkipRow        FixActionKind = "skip-row"
	FixCustom         FixActionKind = "custom"
)

// FixAction is one proposed automated remediation for an enriched error.
type FixAction struct {
	// ID uniquely identifies the action within its error.
	ID string `json:"id"`

	// Label is the short UI caption.
	Label string `json:"label"`

	// Description explains what applying the action will do.
	Description string `json:"description"`

	// Kind is the remediation mechanism.
	Kind FixActionKind `json:"kind"`

	// Confidence is how likely the action resolves the error, 0-100.
	Confidence int `json:"confidence"`

	// Preview optionally shows the value the field would hold afterwards.
	Preview any `json:"preview,omitempty"`
}

// Documentation is a static help snippet attached to well-known codes.
type Documentation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
}

// EnrichedError is the externally consumed error record: a categorized,
// remediable view of one finding. Batch-level errors carry row index 0.
type EnrichedError struct {
	// ID is a stable, deterministic identifier, e.g. "row3-area-1".
	ID string `json:"id"`

	// RowIndex is the 1-based row the error belongs to, or 0 for
	// batch-level errors.
	RowIndex int `json:"row_index"`

	// Field is the semantic field name, empty for batch-level errors.
	Field string `json:"field,omitempty"`

	// Column is the original column name resolved via reverse lookup on the
	// column mapping.
	Column string `json:"column,omitempty"`

	// Severity classifies the error.
	Severity Severity `json:"severity"`

	// Category is derived deterministically from Code.
	Category Category `json:"category"`

	// Code is the originating stable machine code.
	Code string `json:"code"`

	// Message is the human-readable explanation.
	Message string `json:"message"`

	// SuggestedValue optionally carries a replacement value.
	SuggestedValue any `json:"suggested_value,omitempty"`

	// FixActions lists the available automated remediations.
	FixActions []FixAction `json:"fix_actions,omitempty"`

	// Documentation optionally attaches a static help snippet.
	Documentation *Documentation `json:"documentation,omitempty"`
}

// CodeCount reports how often one code occurred across the batch.
type CodeCount struct {
	Code    string  `json:"code"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary aggregates batch-level statistics for one engine run.
type Summary struct {
	TotalRows         int     `json:"total_rows"`
	ValidRows         int     `json:"valid_rows"`
	InvalidRows       int     `json:"invalid_rows"`
	RowsWithWarnings  int     `json:"rows_with_warnings"`
	RowsWithInfos     int     `json:"rows_with_infos"`
	ErrorCount        int     `json:"error_count"`
	AverageConfidence float64 `json:"average_confidence"`

	// ProcessingTimeMs is the wall-clock duration of the run.
	ProcessingTimeMs int64 `json:"processing_time_ms"`

	// TopCodes lists the up-to-10 most frequent codes with their share of
	// all enriched errors.
	TopCodes []CodeCount `json:"top_codes,omitempty"`
}

// Report is the complete result of one engine run: per-row outcomes, batch
// findings, the flattened enriched error list, and summary statistics.
// Everything is plain serializable data suitable for JSON encoding.
type Report struct {
	// RunID identifies this run, typically a UUID.
	RunID string `json:"run_id"`

	ValidatedRows  []ValidatedRow  `json:"validated_rows"`
	GlobalFindings []GlobalFinding `json:"global_findings"`
	Errors         []EnrichedError `json:"errors"`
	Summary        Summary         `json:"summary"`
}
