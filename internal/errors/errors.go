// Package errors provides standardized error types for timeframe operations.
// This package defines Error for consistent error handling across all public
// APIs, with an error kind taxonomy, operation context and wrapping support.
package errors

import (
	"fmt"
)

// Kind classifies an Error into one of the failure categories surfaced by
// the container dispatch and windowing code.
type Kind int

const (
	// KindUnsupportedType indicates a container that matches none of the
	// known encodings at a dispatch point.
	KindUnsupportedType Kind = iota
	// KindInputType indicates input rejected by scitype detection or by
	// parameter/kind validation before an operation proceeds.
	KindInputType
	// KindInternal indicates an exhaustiveness defect: a branch that the
	// prior dispatch should have made unreachable.
	KindInternal
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedType:
		return "unsupported type"
	case KindInputType:
		return "invalid input"
	case KindInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error represents standardized errors across all timeframe operations
type Error struct {
	Kind    Kind   // Failure category
	Op      string // Operation name (e.g., "Cutoff", "GetWindow")
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *Error) Is(target error) bool {
	if te, ok := target.(*Error); ok {
		return e.Kind == te.Kind && e.Op == te.Op && e.Message == te.Message
	}
	return false
}

// NewUnsupportedType creates an error for containers outside the known
// encoding set.
func NewUnsupportedType(op string, container any) *Error {
	return &Error{
		Kind:    KindUnsupportedType,
		Op:      op,
		Message: fmt.Sprintf("container type %T is not a supported encoding", container),
	}
}

// NewInputType creates an error for inputs rejected before dispatch.
func NewInputType(op, message string) *Error {
	return &Error{
		Kind:    KindInputType,
		Op:      op,
		Message: message,
	}
}

// NewInputTypeWrap creates an input error wrapping a detection failure.
func NewInputTypeWrap(op, message string, cause error) *Error {
	return &Error{
		Kind:    KindInputType,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// NewInternal creates an error for branches that exhaustive dispatch should
// have made unreachable. Callers must never catch or retry these.
func NewInternal(op, message string) *Error {
	return &Error{
		Kind:    KindInternal,
		Op:      op,
		Message: message,
	}
}

// IsUnsupportedType reports whether err is an Error of KindUnsupportedType.
func IsUnsupportedType(err error) bool {
	return hasKind(err, KindUnsupportedType)
}

// IsInputType reports whether err is an Error of KindInputType.
func IsInputType(err error) bool {
	return hasKind(err, KindInputType)
}

// IsInternal reports whether err is an Error of KindInternal.
func IsInternal(err error) bool {
	return hasKind(err, KindInternal)
}

func hasKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
