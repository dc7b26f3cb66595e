package lifecycle

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/wippyai/lifecycle/cleanup"
	"github.com/wippyai/lifecycle/errors"
	"github.com/wippyai/lifecycle/internal/store"
)

// pending is a scheduled callback tracked as a cancellable resource. Its
// record's teardown is cancel, so Remove(handle) or Clean stops the timer
// and the callback never runs. A normal fire retires the record without
// invoking cancel.
type pending struct {
	m         *Manager
	fn        func()
	timer     *clock.Timer
	index     int
	cancelled bool
}

// After schedules fn to run once d has elapsed on the manager's clock and
// returns the handle addressing the pending work. The handle is a regular
// sequence index: Remove(handle) before expiry cancels the callback, and
// Clean cancels everything still pending.
//
// Fails with invalid_argument for a negative delay or nil fn, and with
// invalid_state after Clean. Letting the delay elapse guarantees exactly
// one invocation; fn runs off the manager lock with panics suppressed.
func (m *Manager) After(d time.Duration, fn func()) (int, error) {
	if d < 0 {
		return 0, errors.InvalidArgument("after", "negative delay")
	}
	if fn == nil {
		return 0, errors.InvalidArgument("after", "nil callback")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cleaned {
		return 0, errors.InvalidState("after")
	}

	p := &pending{m: m, fn: fn}
	p.index = m.store.Append(&store.Record{
		Item:     p,
		Teardown: cleanup.Action(p.cancel),
	})
	// The lock is held until After returns, so a zero-delay fire blocks
	// until the index and timer fields are in place.
	p.timer = m.clk.AfterFunc(d, p.fire)
	return p.index, nil
}

// cancel is the record's teardown: it flips the flag and stops the timer.
func (p *pending) cancel() error {
	p.m.mu.Lock()
	p.cancelled = true
	t := p.timer
	p.m.mu.Unlock()

	if t != nil {
		t.Stop()
	}
	return nil
}

// fire runs on the clock's goroutine when the delay elapses.
func (p *pending) fire() {
	p.m.mu.Lock()
	if p.cancelled || p.m.cleaned {
		p.m.mu.Unlock()
		return
	}
	// The timer fired normally: retire the tracking record without
	// invoking its teardown, so a later Clean has nothing to double-process.
	p.m.store.TakeIndex(p.index)
	p.m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("deferred callback panicked",
				zap.String("manager", p.m.name),
				zap.Any("panic", r))
		}
	}()
	p.fn()
}
