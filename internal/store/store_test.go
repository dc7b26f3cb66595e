package store

import (
	"testing"
)

func rec(item any) *Record {
	return &Record{Item: item, Teardown: func() error { return nil }}
}

func TestAppendMonotonicIndices(t *testing.T) {
	s := New()

	if idx := s.Append(rec("a")); idx != 1 {
		t.Fatalf("Expected index 1, got %d", idx)
	}
	if idx := s.Append(rec("b")); idx != 2 {
		t.Fatalf("Expected index 2, got %d", idx)
	}

	// removal must not free the index for reuse
	if _, ok := s.TakeIndex(2); !ok {
		t.Fatal("TakeIndex failed")
	}
	if idx := s.Append(rec("c")); idx != 3 {
		t.Fatalf("Expected index 3 after removal, got %d", idx)
	}
}

func TestTakeIndexHoles(t *testing.T) {
	s := New()
	s.Append(rec("a"))
	idx := s.Append(rec("b"))

	r, ok := s.TakeIndex(idx)
	if !ok || r.Item != "b" {
		t.Fatalf("Expected to take 'b', got %v %v", r, ok)
	}

	// the slot is now a hole
	if _, ok := s.TakeIndex(idx); ok {
		t.Fatal("Expected second take of same index to miss")
	}

	// out-of-range indices miss cleanly
	if _, ok := s.TakeIndex(0); ok {
		t.Fatal("Index 0 must never resolve")
	}
	if _, ok := s.TakeIndex(99); ok {
		t.Fatal("Out-of-range index must miss")
	}
}

func TestKeyedPutReplaces(t *testing.T) {
	s := New()
	s.Put("x", rec("first"))
	s.Put("x", rec("second"))

	r, ok := s.GetKey("x")
	if !ok || r.Item != "second" {
		t.Fatalf("Expected replacement to win, got %v", r)
	}
	if s.Len() != 1 {
		t.Fatalf("Expected 1 record, got %d", s.Len())
	}
}

func TestTakeKey(t *testing.T) {
	s := New()
	s.Put("conn", rec("item"))

	r, ok := s.TakeKey("conn")
	if !ok || r.Item != "item" {
		t.Fatalf("TakeKey failed: %v %v", r, ok)
	}
	if _, ok := s.TakeKey("conn"); ok {
		t.Fatal("Expected key to be gone")
	}
	if _, ok := s.TakeKey("never"); ok {
		t.Fatal("Unknown key must miss")
	}
}

func TestTakeItemScansKeyedFirst(t *testing.T) {
	s := New()
	s.Put("k", rec("shared"))
	s.Append(rec("shared"))

	if _, ok := s.TakeItem("shared"); !ok {
		t.Fatal("TakeItem missed")
	}
	if _, stillKeyed := s.GetKey("k"); stillKeyed {
		t.Fatal("Expected keyed entry taken first")
	}
	if s.Len() != 1 {
		t.Fatalf("Expected sequence copy to remain, got Len=%d", s.Len())
	}
}

func TestTakeItemFuncIdentity(t *testing.T) {
	s := New()
	f1 := func() {}
	f2 := func() {}
	s.Append(rec(f1))
	s.Append(rec(f2))

	if _, ok := s.TakeItem(f2); !ok {
		t.Fatal("Expected func item found by pointer identity")
	}
	if s.Len() != 1 {
		t.Fatalf("Expected one record left, got %d", s.Len())
	}
}

func TestTakeItemMiss(t *testing.T) {
	s := New()
	s.Append(rec("a"))

	if _, ok := s.TakeItem("b"); ok {
		t.Fatal("Expected miss for untracked item")
	}
	if _, ok := s.TakeItem(nil); ok {
		t.Fatal("Expected miss for nil item")
	}
}

func TestDrainOrder(t *testing.T) {
	s := New()
	s.Append(rec("seq1"))
	s.Append(rec("seq2"))
	s.Append(rec("seq3"))
	s.TakeIndex(2) // hole
	s.Put("k1", rec("keyed1"))

	records := s.Drain()
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// keyed entries come first, then sequence high to low
	if records[0].Item != "keyed1" {
		t.Fatalf("Expected keyed entry first, got %v", records[0].Item)
	}
	if records[1].Item != "seq3" || records[2].Item != "seq1" {
		t.Fatalf("Expected sequence sweep high to low, got %v, %v",
			records[1].Item, records[2].Item)
	}

	if s.Len() != 0 {
		t.Fatalf("Expected empty store after drain, got %d", s.Len())
	}

	// indices stay burned after a drain
	if idx := s.Append(rec("late")); idx != 4 {
		t.Fatalf("Expected index 4 after drain, got %d", idx)
	}
}

func TestLen(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Fatal("Expected empty store")
	}
	s.Append(rec("a"))
	s.Put("k", rec("b"))
	if s.Len() != 2 {
		t.Fatalf("Expected 2, got %d", s.Len())
	}
	s.TakeItem("a")
	if s.Len() != 1 {
		t.Fatalf("Expected 1, got %d", s.Len())
	}
}
