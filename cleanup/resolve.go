package cleanup

import (
	"io"
	"reflect"

	"github.com/wippyai/lifecycle/errors"
)

// Resolve fixes one concrete teardown Action for item according to spec.
// Resolution happens exactly once, at registration time; the returned
// Action is cached in the record and the item is never re-probed later.
//
// The returned Action is always non-nil; items with no usable teardown
// resolve to a no-op.
func Resolve(item any, spec Spec) (Action, error) {
	switch spec.kind {
	case specMethod:
		if spec.method == "" {
			return nil, errors.InvalidArgument("resolve", "empty method name")
		}
		return methodAction(item, spec.method), nil
	case specFunc:
		return funcAction(spec.fn, item)
	default:
		return heuristicAction(item), nil
	}
}

// guard converts panics inside fn into errors so the action can never
// abort a sibling teardown.
func guard(fn func() error) Action {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Panic("teardown", r)
			}
		}()
		return fn()
	}
}

func noop() error { return nil }

// methodAction defers the lookup to fire time: the item is probed for the
// named operation when the action runs, and a missing method is a no-op.
func methodAction(item any, name string) Action {
	return guard(func() error {
		v := reflect.ValueOf(item)
		if !v.IsValid() {
			return nil
		}
		m := v.MethodByName(name)
		if !m.IsValid() {
			return nil
		}
		return errFromOut(m.Call(nil))
	})
}

func funcAction(fn, item any) (Action, error) {
	switch f := fn.(type) {
	case nil:
		return nil, errors.InvalidArgument("resolve", "nil cleanup function")
	case func():
		return guard(func() error { f(); return nil }), nil
	case func() error:
		return guard(f), nil
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, errors.InvalidArgument("resolve", "cleanup spec is not callable")
	}
	t := v.Type()
	if t.IsVariadic() || t.NumIn() > 1 {
		return nil, errors.InvalidArgument("resolve", "cleanup function must take at most the item")
	}

	return guard(func() error {
		var args []reflect.Value
		if t.NumIn() == 1 {
			args = []reflect.Value{argValue(item, t.In(0))}
		}
		return errFromOut(v.Call(args))
	}), nil
}

// heuristicAction infers a teardown from the item's capability set.
// Priority: subscription handle, destroyable object, closer, connection
// handle, the item being directly callable, then no-op.
func heuristicAction(item any) Action {
	switch v := item.(type) {
	case Unsubscriber:
		return guard(func() error { v.Unsubscribe(); return nil })
	case Destroyer:
		return guard(func() error { v.Destroy(); return nil })
	case errDestroyer:
		return guard(v.Destroy)
	case io.Closer:
		return guard(v.Close)
	case Disconnecter:
		return guard(func() error { v.Disconnect(); return nil })
	case errDisconnecter:
		return guard(v.Disconnect)
	case func():
		return guard(func() error { v(); return nil })
	case func() error:
		return guard(v)
	}

	// Named function types (context.CancelFunc and friends) don't match
	// the literal cases above, so probe by reflection.
	rv := reflect.ValueOf(item)
	if rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 && !rv.Type().IsVariadic() {
		return guard(func() error { return errFromOut(rv.Call(nil)) })
	}

	return noop
}

// argValue prepares item for a reflective call, substituting the zero
// value of want when the item is an untyped nil.
func argValue(item any, want reflect.Type) reflect.Value {
	if item == nil {
		return reflect.Zero(want)
	}
	return reflect.ValueOf(item)
}

// errFromOut extracts a trailing error result, if any.
func errFromOut(out []reflect.Value) error {
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.Type() == errType && !last.IsNil() {
		return last.Interface().(error)
	}
	return nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()
