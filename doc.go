// Package lifecycle provides a generic registry for live resources —
// subscriptions, handles, callables, timers, child managers — that
// guarantees every tracked resource is torn down exactly once.
//
// # Architecture Overview
//
// The library is organized into a small facade plus focused packages:
//
//	lifecycle/           Manager facade, deferred work, lifetime binding, leak registry
//	├── cleanup/         Teardown resolution: explicit specs and capability probing
//	├── internal/store/  Dual-indexed storage with stable, never-reused indices
//	├── signal/          Minimal subscribe/fire/disconnect event primitive
//	└── errors/          Structured error types (invalid_state, invalid_argument, ...)
//
// # Quick Start
//
//	m := lifecycle.New("session")
//	defer m.Clean()
//
//	// Track anything with a recognizable teardown capability
//	m.Add(subscription)          // Unsubscribe() inferred
//	m.Add(file)                  // Close() inferred
//	m.Add(cancelCtx)             // the item itself is callable
//
//	// Or pin the teardown explicitly
//	m.Add(srv, cleanup.Method("Shutdown"))
//	m.Give("conn", conn, cleanup.Func(func() { conn.Hangup() }))
//
//	// Deferred work is a cancellable tracked resource
//	handle, _ := m.After(5*time.Second, flush)
//	m.Remove(handle) // flush never runs
//
// Clean is idempotent and terminal: after it runs, Add and Give fail with
// invalid_state, and every teardown has executed exactly once. Individual
// teardown failures (errors or panics) are suppressed and logged — one
// misbehaving resource never blocks the rest of the sweep.
//
// # Lifetime Coupling
//
// A manager can follow an external object's lifetime:
//
//	m.BindTo(obj)           // obj.Destroying() signal triggers Clean
//	m.BindToContext(ctx)    // ctx cancellation triggers Clean
//
// # Leak Diagnostics
//
// Every manager registers itself, weakly, in a process-wide registry at
// construction and deregisters on Clean. ReportLeaks logs every manager
// that is still reachable but was never cleaned, with its creation trace:
//
//	lifecycle.SetLogger(log)
//	lifecycle.ReportLeaks()
//
// The references are weak: an abandoned manager is collected normally and
// its registry entry pruned, so the diagnostic only names managers that
// are genuinely still alive.
//
// # Concurrency
//
// All Manager methods are safe for concurrent use behind a single mutex.
// Teardown actions run synchronously and off the lock, so they may
// re-enter the manager; re-entrant registrations during Clean are
// rejected. There is no per-action timeout: a teardown that blocks stalls
// the remainder of its sweep.
package lifecycle
