package domain

// RawRow is one input record of a bulk import batch, keyed by the original
// column names from the uploaded file. Values are untyped because
// spreadsheet cells arrive as strings, numbers, or blanks. Supplied by the
// caller and never mutated by the engine.
type RawRow map[string]any

// ColumnMapping maps original column names to semantic field names,
// e.g. "Área" -> "area".
type ColumnMapping map[string]string

// MappedRow is a RawRow re-keyed by semantic field name after applying the
// active ColumnMapping.
type MappedRow map[string]any

// ValidatedRow aggregates one mapped row with every finding the row
// validator produced for it, plus values derived from those findings.
// It is created once per row and never mutated in place.
type ValidatedRow struct {
	// RowIndex is the 1-based position of the row in the input batch.
	// Indices are stable across the whole pipeline run.
	RowIndex int `json:"row_index"`

	// Mapped holds the row's values keyed by semantic field name.
	Mapped MappedRow `json:"mapped"`

	// Findings is the ordered list of validation findings for this row.
	Findings []Finding `json:"findings"`

	// IsValid is true iff no finding has error severity. It is derived,
	// never set independently.
	IsValid bool `json:"is_valid"`

	// Confidence is the 0-100 trustworthiness score for the row.
	Confidence int `json:"confidence"`

	// HasErrors reports whether any finding has error severity.
	HasErrors bool `json:"has_errors"`

	// HasWarnings reports whether any finding has warning severity.
	HasWarnings bool `json:"has_warnings"`

	// HasInfos reports whether any finding has info severity.
	HasInfos bool `json:"has_infos"`
}

// NewValidatedRow builds a ValidatedRow from a mapped row and its findings,
// deriving validity and the confidence score. Confidence starts at 100 and
// loses 20 points per error and 5 per warning, floored at 0.
func NewValidatedRow(rowIndex int, mapped MappedRow, findings []Finding) ValidatedRow {
	row := ValidatedRow{
		RowIndex:   rowIndex,
		Mapped:     mapped,
		Findings:   findings,
		Confidence: 100,
	}

	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			row.HasErrors = true
			row.Confidence -= errorPenalty
		case SeverityWarning:
			row.HasWarnings = true
			row.Confidence -= warningPenalty
		case SeverityInfo:
			row.HasInfos = true
		}
	}

	if row.Confidence < 0 {
		row.Confidence = 0
	}
	row.IsValid = !row.HasErrors

	return row
}
