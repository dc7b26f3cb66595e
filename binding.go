package lifecycle

import (
	"context"
	"sync"

	"github.com/wippyai/lifecycle/errors"
	"github.com/wippyai/lifecycle/signal"
)

// Lifetime is the capability an object needs for BindTo: a one-shot
// "about to be destroyed" signal.
type Lifetime interface {
	Destroying() *signal.Signal
}

// BindTo couples the manager's lifetime to obj: when obj announces its
// destruction, Clean runs. The subscription itself is tracked, so it is
// disconnected automatically when the manager cleans first. Repeat
// firings are absorbed by Clean's idempotence.
func (m *Manager) BindTo(obj Lifetime) error {
	if obj == nil {
		return errors.InvalidArgument("bind", "nil object")
	}

	conn := obj.Destroying().Connect(m.Clean)
	if _, err := m.Add(conn); err != nil {
		conn.Disconnect()
		return err
	}
	return nil
}

// BindToContext cleans the manager when ctx is done. The watcher stops
// silently if the manager cleans first.
func (m *Manager) BindToContext(ctx context.Context) error {
	if ctx == nil {
		return errors.InvalidArgument("bind", "nil context")
	}

	stop := make(chan struct{})
	var once sync.Once
	stopWatch := func() { once.Do(func() { close(stop) }) }

	// The stop function is the tracked resource; the heuristic resolver
	// invokes it on Clean, releasing the goroutine.
	if _, err := m.Add(stopWatch); err != nil {
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			m.Clean()
		case <-stop:
		}
	}()
	return nil
}
