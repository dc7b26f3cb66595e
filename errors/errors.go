package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the error
type Kind string

const (
	// KindInvalidState marks a mutating call issued after the manager
	// reached its terminal cleaned state.
	KindInvalidState Kind = "invalid_state"

	// KindInvalidArgument marks a structurally bad call: empty key,
	// negative delay, nil callback, non-callable cleanup function.
	KindInvalidArgument Kind = "invalid_argument"

	// KindCleanupFailure marks an error or panic raised by a resolved
	// teardown action or deferred callback. These are always caught
	// internally and logged; they never reach a caller.
	KindCleanupFailure Kind = "cleanup_failure"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Op)
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when
// their Kinds match; an empty Op on the target acts as a wildcard.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Op != "" && t.Op != e.Op {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for the error taxonomy

// InvalidState creates an error for a mutating call on a cleaned manager
func InvalidState(op string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidState,
		Detail: "manager already cleaned",
	}
}

// InvalidArgument creates an error for a structurally bad call
func InvalidArgument(op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// CleanupFailure wraps an error raised by a teardown action
func CleanupFailure(op string, cause error) *Error {
	return &Error{
		Op:    op,
		Kind:  KindCleanupFailure,
		Cause: cause,
	}
}

// Panic converts a recovered panic value into a cleanup failure
func Panic(op string, recovered any) *Error {
	return &Error{
		Op:     op,
		Kind:   KindCleanupFailure,
		Detail: fmt.Sprintf("panic: %v", recovered),
	}
}

// IsKind reports whether err (or anything it wraps) carries the given Kind
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
