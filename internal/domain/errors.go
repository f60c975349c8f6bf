package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during an import validation run.
var (
	// ErrInvalidContext indicates the ValidationContext is missing or
	// malformed; the whole run aborts rather than producing partial results.
	ErrInvalidContext = errors.New("invalid validation context")

	// ErrEmptyMapping indicates no column-to-field mapping was supplied.
	ErrEmptyMapping = errors.New("empty column mapping")

	// ErrInvalidLexicon indicates a replacement lexicon is unusable.
	ErrInvalidLexicon = errors.New("invalid lexicon")
)

// RunError wraps an unexpected failure of a whole engine run with enough
// context to identify the failing stage.
type RunError struct {
	// Stage names the pipeline stage that failed.
	Stage string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for RunError.
func (e *RunError) Error() string {
	return fmt.Sprintf("import validation failed: stage=%s, err=%v", e.Stage, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is/As chains.
func (e *RunError) Unwrap() error { return e.Err }

// NewRunError creates a RunError for the given pipeline stage.
func NewRunError(stage string, err error) *RunError {
	return &RunError{Stage: stage, Err: err}
}
