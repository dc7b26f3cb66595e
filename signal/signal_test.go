package signal

import "testing"

func TestConnectAndFire(t *testing.T) {
	s := New()
	calls := 0
	s.Connect(func() { calls++ })

	s.Fire()
	s.Fire()
	if calls != 2 {
		t.Fatalf("Expected 2 calls, got %d", calls)
	}
}

func TestDisconnect(t *testing.T) {
	s := New()
	calls := 0
	conn := s.Connect(func() { calls++ })

	if !conn.Connected() {
		t.Fatal("Expected connection live after Connect")
	}

	conn.Disconnect()
	if conn.Connected() {
		t.Fatal("Expected connection dead after Disconnect")
	}

	s.Fire()
	if calls != 0 {
		t.Fatalf("Expected no calls after disconnect, got %d", calls)
	}

	// double disconnect is a no-op
	conn.Disconnect()
}

func TestFireOrder(t *testing.T) {
	s := New()
	var order []int
	s.Connect(func() { order = append(order, 1) })
	s.Connect(func() { order = append(order, 2) })

	s.Fire()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("Expected connection order preserved, got %v", order)
	}
}

func TestDisconnectDuringFire(t *testing.T) {
	s := New()
	calls := 0
	var conn *Connection
	conn = s.Connect(func() {
		calls++
		conn.Disconnect()
	})

	s.Fire()
	s.Fire()
	if calls != 1 {
		t.Fatalf("Expected handler to run once, got %d", calls)
	}
	if s.Len() != 0 {
		t.Fatalf("Expected no connections left, got %d", s.Len())
	}
}

func TestDisconnectOther(t *testing.T) {
	s := New()
	a := s.Connect(func() {})
	b := s.Connect(func() {})

	a.Disconnect()
	if !b.Connected() {
		t.Fatal("Disconnecting one connection must not affect another")
	}
	if s.Len() != 1 {
		t.Fatalf("Expected 1 connection, got %d", s.Len())
	}
}
