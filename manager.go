package lifecycle

import (
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/lifecycle/cleanup"
	"github.com/wippyai/lifecycle/errors"
	"github.com/wippyai/lifecycle/internal/store"
)

// Manager tracks heterogeneous live resources — subscriptions, handles,
// callables, child managers — and guarantees each one's teardown runs
// exactly once, no later than Clean.
//
// Every registration fixes a teardown action up front (see the cleanup
// package), so nothing is re-probed at sweep time. Teardown failures are
// suppressed and logged; they never abort the sweep or reach the caller.
//
// All methods are safe for concurrent use. Teardown actions themselves run
// outside the manager lock and may re-enter the manager; registrations
// attempted during Clean are rejected with invalid_state.
type Manager struct {
	mu      sync.Mutex
	store   *store.Store
	clk     clock.Clock
	id      string
	name    string
	cleaned bool
}

// New creates a manager. The name is optional ("" is fine) and only shows
// up in logs and leak reports.
func New(name string) *Manager {
	return NewWithClock(name, clock.New())
}

// NewWithClock creates a manager whose deferred work is scheduled on clk.
// Tests pass a clock.Mock to drive timers deterministically.
func NewWithClock(name string, clk clock.Clock) *Manager {
	m := &Manager{
		store: store.New(),
		clk:   clk,
		id:    uuid.New().String(),
		name:  name,
	}
	registerManager(m)
	return m
}

// ID returns the manager's process-unique id.
func (m *Manager) ID() string { return m.id }

// Name returns the optional name given at construction.
func (m *Manager) Name() string { return m.name }

// Add registers item at the next sequence index and returns that index.
// The teardown is resolved once, now: explicitly via an optional
// cleanup.Spec, or heuristically from the item's capability set.
// Fails with invalid_state after Clean.
func (m *Manager) Add(item any, spec ...cleanup.Spec) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cleaned {
		return 0, errors.InvalidState("add")
	}
	action, err := resolveSpec(item, spec)
	if err != nil {
		return 0, err
	}
	return m.store.Append(&store.Record{Item: item, Teardown: action}), nil
}

// Give registers item under key, silently replacing any prior entry for
// that key. The replaced entry's teardown is NOT invoked — callers that
// reuse keys must Remove first if they want the old resource released.
// Fails with invalid_argument on an empty key, invalid_state after Clean.
func (m *Manager) Give(key string, item any, spec ...cleanup.Spec) error {
	if key == "" {
		return errors.InvalidArgument("give", "empty key")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cleaned {
		return errors.InvalidState("give")
	}
	action, err := resolveSpec(item, spec)
	if err != nil {
		return err
	}
	m.store.Put(key, &store.Record{Item: item, Teardown: action})
	return nil
}

// Get returns the item tracked under key. No side effects.
func (m *Manager) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetKey(key)
	if !ok {
		return nil, false
	}
	return r.Item, true
}

// Remove untracks one resource and invokes its teardown. ref resolves in
// order: a string is an exact key, an int is an exact sequence index, and
// anything else (or a miss on the first two) falls back to an identity
// scan of the keyed store, then the sequence store.
// Returns the item, or (nil, false) when nothing matched.
func (m *Manager) Remove(ref any) (any, bool) {
	return m.remove(ref, true)
}

// Release is Remove without the teardown: the resource is untracked and
// handed back to the caller, who takes over its lifetime.
func (m *Manager) Release(ref any) (any, bool) {
	return m.remove(ref, false)
}

func (m *Manager) remove(ref any, teardown bool) (any, bool) {
	m.mu.Lock()
	rec, ok := m.take(ref)
	m.mu.Unlock()

	if !ok {
		return nil, false
	}
	if teardown {
		if err := rec.Teardown(); err != nil {
			Logger().Warn("teardown failed",
				zap.String("manager", m.name),
				zap.String("op", "remove"),
				zap.Error(err))
		}
	}
	return rec.Item, true
}

func (m *Manager) take(ref any) (*store.Record, bool) {
	switch k := ref.(type) {
	case string:
		if rec, ok := m.store.TakeKey(k); ok {
			return rec, true
		}
	case int:
		if rec, ok := m.store.TakeIndex(k); ok {
			return rec, true
		}
	}
	return m.store.TakeItem(ref)
}

// Clean tears down every tracked resource and puts the manager in its
// terminal state. Idempotent: the second call does nothing.
//
// The cleaned flag flips first, so a teardown that re-enters Add or Give
// is rejected. Keyed entries sweep first (order unspecified), then
// sequence slots from highest index to lowest. Each teardown runs exactly
// once and is individually fault-isolated.
func (m *Manager) Clean() {
	m.mu.Lock()
	if m.cleaned {
		m.mu.Unlock()
		return
	}
	m.cleaned = true
	records := m.store.Drain()
	m.mu.Unlock()

	var errs error
	for _, rec := range records {
		if err := rec.Teardown(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	deregisterManager(m.id)

	if errs != nil {
		Logger().Warn("suppressed teardown failures",
			zap.String("manager", m.name),
			zap.Int("failed", len(multierr.Errors(errs))),
			zap.Error(errs))
	}
}

// Destroy is an alias for Clean. It also makes a Manager satisfy the
// cleanup.Destroyer capability, so a manager added to another manager is
// cleaned by its parent.
func (m *Manager) Destroy() {
	m.Clean()
}

// IsCleaned reports whether the manager reached its terminal state.
func (m *Manager) IsCleaned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleaned
}

// Len reports the number of live tracked resources.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Len()
}

// Extend creates a child manager tracked by m, sharing m's clock. Cleaning
// the parent cleans the child; cleaning the child first is also fine.
func (m *Manager) Extend(name string) (*Manager, error) {
	child := NewWithClock(name, m.clk)
	if _, err := m.Add(child); err != nil {
		child.Clean()
		return nil, err
	}
	return child, nil
}

func resolveSpec(item any, specs []cleanup.Spec) (cleanup.Action, error) {
	var s cleanup.Spec
	if len(specs) > 0 {
		s = specs[0]
	}
	return cleanup.Resolve(item, s)
}
