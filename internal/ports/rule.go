// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the engine testable.
package ports

import (
	"github.com/stratix-platform/importcheck/internal/domain"
)

// FieldRule validates one semantic field type. Implementations must be
// pure, stateless, and safe for concurrent use: the row validator runs
// rules from multiple goroutines against a shared read-only context.
type FieldRule interface {
	// Field returns the semantic field name this rule owns, e.g. "area".
	// The name is used for registry lookup, logging, and error reporting.
	Field() string

	// Evaluate inspects a single raw cell value and returns zero or more
	// findings. A nil or empty slice means the value passed.
	// Evaluate must not panic on malformed input; unparsable values are
	// reported as findings, never as panics or Go errors.
	Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding
}
