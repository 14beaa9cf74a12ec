package analysis

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// Common sentinel errors
var (
	// ErrEmptyGraph marks an operation on a graph without edges. Queries recover
	// from it locally and return their empty result, it is never returned.
	ErrEmptyGraph        = errors.New("graph has no edges")
	ErrUnknownRelation   = graph.ErrUnknownRelation
	ErrMissingIdentifier = graph.ErrMissingIdentifier
	ErrInvalidMetric     = errors.New("invalid metric")
	ErrCommunityIndex    = errors.New("community index out of range")
	ErrNotAnalysed       = errors.New("graph has not been analysed")
)

// Error provides structured error information for analysis operations.
type Error struct {
	Op       string // Operation that failed (e.g., "TopNodes", "CommunityMetrics")
	Relation string // Relation graph the operation ran against
	Cause    error  // Underlying error
	Context  string // Additional context
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Relation != "" && e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Relation, e.Context, e.Cause)
	case e.Relation != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Relation, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building analysis Errors.
type ErrorBuilder struct {
	err Error
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Op: op}}
}

// Relation sets the relation graph.
func (b *ErrorBuilder) Relation(rel graph.Relation) *ErrorBuilder {
	b.err.Relation = rel.String()
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// InvalidMetricError rejects a metric name.
func InvalidMetricError(op, name string) error {
	return NewError(op).Cause(ErrInvalidMetric).Context("metric %q", name).Err()
}

// CommunityIndexError rejects a community index.
func CommunityIndexError(rel graph.Relation, index, count int) error {
	return NewError("CommunityMetrics").Relation(rel).Cause(ErrCommunityIndex).
		Context("index %d, %d communities", index, count).Err()
}
