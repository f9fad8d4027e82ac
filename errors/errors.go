// Package errors provides error handling for offsetter.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for developer-facing diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check layout errors
//	if errors.Is(err, errors.ErrFieldOverlap) {
//	    // the declarative spec is wrong, report and abort
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// Developer-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Layout specification errors. Every one of these is a developer mistake in
// the declarative input, never a runtime condition: the planner fails fast
// and generation stops. Wrap these with errors.Wrapf() to attach the struct
// and field names while preserving the kind for errors.Is().
var (
	// ErrUnorderedOffset indicates fields that are not strictly ascending
	// by offset, including two fields declaring the same offset.
	ErrUnorderedOffset = New("fields not strictly ordered by offset")

	// ErrFieldOverlap indicates a field whose byte range extends into the
	// starting offset of the next field.
	ErrFieldOverlap = New("field overlaps the next field")

	// ErrStructOverflow indicates the final field ends past the declared
	// total struct size.
	ErrStructOverflow = New("fields exceed declared struct size")

	// ErrUnknownType indicates a field type string the type table cannot
	// resolve to a sized Go type.
	ErrUnknownType = New("unknown field type")

	// ErrOffsetMismatch indicates the generated struct cannot actually
	// place a member at its declared offset under the target's layout
	// rules. Raised only in checked mode.
	ErrOffsetMismatch = New("member offset does not match declared offset")

	// ErrSizeMismatch indicates the generated struct's size under the
	// target's layout rules differs from the declared total size. Raised
	// only in checked mode.
	ErrSizeMismatch = New("struct size does not match declared size")
)

// IsLayoutError reports whether err is any of the plan-time specification
// errors. Mismatch errors are excluded: those are verification failures over
// an otherwise well-formed plan.
func IsLayoutError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnorderedOffset, ErrFieldOverlap, ErrStructOverflow, ErrUnknownType)
}

// IsMismatchError reports whether err is a checked-mode verification failure.
func IsMismatchError(err error) bool {
	return err != nil && IsAny(err, ErrOffsetMismatch, ErrSizeMismatch)
}
