// Package cleanup resolves teardown actions for tracked resources.
//
// Every resource registered with a lifecycle Manager gets exactly one
// Action, fixed at registration time by Resolve. Callers can pin the
// teardown explicitly or let the resolver infer one:
//
//	m.Add(conn)                           // heuristic: probes capabilities
//	m.Add(watcher, cleanup.Method("Stop")) // named operation, looked up at fire time
//	m.Add(tmp, cleanup.Func(func() { os.Remove(tmp.Name()) }))
//
// # Heuristic resolution
//
// With no explicit Spec, the item's capability set is probed in priority
// order:
//
//	Unsubscribe()            subscription / event handle
//	Destroy() / Destroy() error   destroyable object (including *lifecycle.Manager)
//	Close() error            io.Closer
//	Disconnect() / Disconnect() error
//	func() / func() error    the item itself is callable
//	(none)                   no-op
//
// # Failure isolation
//
// Actions returned by Resolve recover panics and report them as errors.
// The manager logs these and moves on; a misbehaving teardown can never
// abort the rest of a sweep or reach the caller.
package cleanup
