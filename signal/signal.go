// Package signal provides a minimal synchronous event primitive: the
// subscribe/unsubscribe capability consumed by lifetime binding and usable
// by anything that needs to announce its own destruction.
//
//	destroying := signal.New()
//	conn := destroying.Connect(func() { fmt.Println("going away") })
//	destroying.Fire()
//	conn.Disconnect()
//
// Handlers run synchronously on the firing goroutine, in connection order.
// Disconnecting during a fire is allowed; the handler set is snapshotted
// before dispatch.
package signal

import "sync"

// Signal is a connectable event source.
type Signal struct {
	mu    sync.Mutex
	conns []*Connection
}

// Connection is a live subscription to a Signal. Its Disconnect method
// satisfies the heuristic teardown capability of the cleanup resolver, so
// a Connection tracked by a manager is unsubscribed automatically.
type Connection struct {
	sig *Signal
	fn  func()
}

// New creates a signal with no connections.
func New() *Signal {
	return &Signal{}
}

// Connect subscribes fn and returns the connection handle.
func (s *Signal) Connect(fn func()) *Connection {
	c := &Connection{sig: s, fn: fn}
	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()
	return c
}

// Fire invokes every connected handler. Handlers added or removed by a
// handler take effect on the next fire.
func (s *Signal) Fire() {
	s.mu.Lock()
	snapshot := make([]*Connection, len(s.conns))
	copy(snapshot, s.conns)
	s.mu.Unlock()

	for _, c := range snapshot {
		c.fn()
	}
}

// Len reports the number of live connections.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Disconnect removes the connection. Safe to call more than once.
func (c *Connection) Disconnect() {
	s := c.sig
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, conn := range s.conns {
		if conn == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return
		}
	}
}

// Connected reports whether the connection is still subscribed.
func (c *Connection) Connected() bool {
	s := c.sig
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		if conn == c {
			return true
		}
	}
	return false
}
