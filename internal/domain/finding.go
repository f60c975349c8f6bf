package domain

// Severity classifies how a validation finding affects the commit decision
// for a row. Errors block the row, warnings request review, infos are
// cosmetic and never block.
type Severity string

const (
	// SeverityError blocks committing the affected row.
	SeverityError Severity = "error"

	// SeverityWarning allows the row to be committed but flags it for review.
	SeverityWarning Severity = "warning"

	// SeverityInfo marks cosmetic or auto-normalizable observations.
	SeverityInfo Severity = "info"
)

// Confidence penalties applied per finding when scoring a row.
const (
	errorPenalty   = 20
	warningPenalty = 5
)

// Finding records a single validation observation about one field of a row.
// Findings are immutable once created; downstream stages derive new
// structures instead of mutating them.
type Finding struct {
	// Field is the semantic field name the finding refers to.
	Field string `json:"field"`

	// Severity classifies the finding (error, warning, info).
	Severity Severity `json:"severity"`

	// Message is the human-readable explanation.
	Message string `json:"message"`

	// Code is the stable machine code for this condition. Codes are never
	// reused across unrelated conditions.
	Code string `json:"code"`

	// Value is the offending raw value as received.
	Value any `json:"value,omitempty"`

	// SuggestedValue is an optional replacement that would resolve the
	// finding.
	SuggestedValue any `json:"suggested_value,omitempty"`

	// Suggestions holds optional candidate values, e.g. close area names.
	Suggestions []string `json:"suggestions,omitempty"`
}

// GlobalFinding records a batch-level observation that required visibility
// across all rows, such as duplicates or aggregate budget variance.
// Batch findings are advisory: they never flip an individual row's
// validity.
type GlobalFinding struct {
	// Kind identifies the batch check that produced this finding.
	Kind string `json:"kind"`

	// Severity classifies the finding.
	Severity Severity `json:"severity"`

	// Message is the human-readable explanation.
	Message string `json:"message"`

	// AffectedRows lists the 1-based indices of the rows involved.
	AffectedRows []int `json:"affected_rows,omitempty"`

	// Suggestions holds remediation hints for the batch condition.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Batch check kinds emitted by the batch validator.
const (
	KindDuplicateDetection = "duplicate_detection"
	KindAreaConsistency    = "area_consistency"
	KindBudgetVariance     = "budget_variance"
)
