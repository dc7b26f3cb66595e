// Package errors provides the structured error types used by the lifecycle
// library.
//
// Errors carry an operation name and a Kind so callers can distinguish
// structural misuse from teardown-time failures:
//
//	_, err := m.Add(res)
//	if errors.IsKind(err, errors.KindInvalidState) {
//	    // manager was already cleaned
//	}
//
// Matching also works through the standard library:
//
//	stderrors.Is(err, &errors.Error{Kind: errors.KindInvalidState})
//
// Only invalid_state and invalid_argument are ever returned to callers.
// cleanup_failure exists for logging: teardown actions and deferred
// callbacks are fault-isolated, and their errors never propagate.
//
// A lookup miss (Get or Remove on an unknown key) is not an error; those
// operations report misses with a false second return value.
package errors
