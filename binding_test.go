package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/wippyai/lifecycle/errors"
	"github.com/wippyai/lifecycle/signal"
)

type fakeInstance struct {
	destroying *signal.Signal
}

func newFakeInstance() *fakeInstance {
	return &fakeInstance{destroying: signal.New()}
}

func (i *fakeInstance) Destroying() *signal.Signal { return i.destroying }

func TestBindToCleansOnDestroy(t *testing.T) {
	m := New("t")
	inst := newFakeInstance()

	obj := &fakeObject{}
	m.Add(obj)

	if err := m.BindTo(inst); err != nil {
		t.Fatalf("BindTo failed: %v", err)
	}

	inst.destroying.Fire()

	if !m.IsCleaned() {
		t.Fatal("Expected manager cleaned when the instance is destroyed")
	}
	if obj.destroyed != 1 {
		t.Fatalf("Expected tracked resources torn down, got %d", obj.destroyed)
	}
}

func TestBindToRepeatFirings(t *testing.T) {
	m := New("t")
	inst := newFakeInstance()

	obj := &fakeObject{}
	m.Add(obj)
	m.BindTo(inst)

	inst.destroying.Fire()
	inst.destroying.Fire()

	if obj.destroyed != 1 {
		t.Fatalf("Expected idempotent Clean across firings, got %d", obj.destroyed)
	}
}

func TestBindToDisconnectsOnClean(t *testing.T) {
	m := New("t")
	inst := newFakeInstance()
	m.BindTo(inst)

	if inst.destroying.Len() != 1 {
		t.Fatalf("Expected 1 connection, got %d", inst.destroying.Len())
	}

	m.Clean()

	// the subscription is a tracked resource; Clean unsubscribes it
	if inst.destroying.Len() != 0 {
		t.Fatalf("Expected connection dropped on Clean, got %d", inst.destroying.Len())
	}
}

func TestBindToNil(t *testing.T) {
	m := New("t")
	defer m.Clean()

	if err := m.BindTo(nil); !errors.IsKind(err, errors.KindInvalidArgument) {
		t.Fatalf("Expected invalid_argument, got %v", err)
	}
}

func TestBindToCleanedManager(t *testing.T) {
	m := New("t")
	m.Clean()

	inst := newFakeInstance()
	if err := m.BindTo(inst); !errors.IsKind(err, errors.KindInvalidState) {
		t.Fatalf("Expected invalid_state, got %v", err)
	}
	if inst.destroying.Len() != 0 {
		t.Fatal("Failed bind must not leave a connection behind")
	}
}

func TestBindToContext(t *testing.T) {
	m := New("t")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	m.Add(func() { close(done) })

	if err := m.BindToContext(ctx); err != nil {
		t.Fatalf("BindToContext failed: %v", err)
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected context cancellation to clean the manager")
	}
	if !m.IsCleaned() {
		t.Fatal("Expected cleaned manager")
	}
}

func TestBindToContextCleanFirst(t *testing.T) {
	m := New("t")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.BindToContext(ctx)
	m.Clean() // stops the watcher

	cancel() // must be a harmless no-op now
	time.Sleep(20 * time.Millisecond)
	if !m.IsCleaned() {
		t.Fatal("Expected manager to stay cleaned")
	}
}
