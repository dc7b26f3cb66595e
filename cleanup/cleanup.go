package cleanup

// Action is a concrete, resolved teardown operation. Actions produced by
// Resolve never panic; a panic inside the underlying operation is recovered
// and returned as an error. The error exists for logging only — the manager
// never surfaces it to callers.
type Action func() error

// Capability interfaces probed by heuristic resolution, in priority order.
// An item only needs to satisfy one of them to get an inferred teardown.

// Unsubscriber is the subscription/event-handle capability.
type Unsubscriber interface {
	Unsubscribe()
}

// Destroyer is the hierarchical engine-object capability. A lifecycle
// Manager itself satisfies it through Destroy, so a child manager tracked
// by a parent is cleaned when the parent cleans.
type Destroyer interface {
	Destroy()
}

// Disconnecter is the generic connection-handle capability.
type Disconnecter interface {
	Disconnect()
}

// error-returning variants of the above, probed alongside them
type errDestroyer interface {
	Destroy() error
}

type errDisconnecter interface {
	Disconnect() error
}

type specKind uint8

const (
	specHeuristic specKind = iota
	specMethod
	specFunc
)

// Spec selects how an item's teardown is resolved. The zero Spec requests
// heuristic resolution against the item's capability set.
type Spec struct {
	fn     any
	method string
	kind   specKind
}

// Method returns a Spec naming an operation to invoke on the item at
// teardown time. The lookup happens when the action fires, not at
// registration; a name that never resolves is a silent no-op.
func Method(name string) Spec {
	return Spec{kind: specMethod, method: name}
}

// Func returns a Spec wrapping an explicit teardown callable. Accepted
// shapes: func(), func() error, or a single-argument function invoked with
// the tracked item. Anything else fails registration with invalid_argument.
func Func(fn any) Spec {
	return Spec{kind: specFunc, fn: fn}
}
