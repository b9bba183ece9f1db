package treekit

import (
	"errors"
	"fmt"
)

// Error kinds categorize planner errors by their type.
const (
	// KindValidation represents errors in caller-supplied input: bounds,
	// paths, identifiers.
	KindValidation = "validation"

	// KindConfiguration represents errors in planner configuration.
	KindConfiguration = "configuration"

	// KindInternal represents failures inside the planner, such as an
	// exhausted random source.
	KindInternal = "internal"
)

// Error is a structured error that wraps a component error with the
// operation that failed and the category of failure.
//
// Error supports unwrapping, so errors.Is reaches the component sentinels:
//
//	_, err := planner.PlanInsert(ctx, "root..bad", "", "")
//	errors.Is(err, ltree.ErrInvalidPath) // true
type Error struct {
	// Op is the operation that failed (e.g. "Planner.PlanInsert").
	Op string

	// Kind categorizes the error (KindValidation, KindConfiguration,
	// KindInternal).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("treekit: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("treekit: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op, when the target sets one), or
// delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

func newValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

func newConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

func newInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}
