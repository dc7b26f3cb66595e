// Package store implements the dual-indexed container behind a lifecycle
// Manager: an append-only arena of sequence slots plus a keyed map.
//
// Sequence indices are 1-based, strictly increasing, and never reused —
// removal leaves a hole instead of recycling the slot, so an index issued
// once can never alias a later record. The keyed side replaces entries
// outright on duplicate keys.
//
// The store is not safe for concurrent use; the owning Manager serializes
// all access behind its own mutex.
package store

import (
	"reflect"

	"github.com/wippyai/lifecycle/cleanup"
)

// Record pairs a tracked item with its resolved teardown action. A record
// lives in exactly one slot: either a sequence index or a key, never both.
type Record struct {
	Item     any
	Teardown cleanup.Action
}

// Store holds all records tracked by one manager.
type Store struct {
	keyed map[string]*Record
	seq   []*Record // holes are nil; the slice never shrinks
}

// New creates an empty store.
func New() *Store {
	return &Store{
		keyed: make(map[string]*Record),
	}
}

// Append adds a record at the next unused sequence index and returns it.
func (s *Store) Append(r *Record) int {
	s.seq = append(s.seq, r)
	return len(s.seq)
}

// Put stores a record under key, replacing any prior entry outright.
// The superseded record's teardown is not invoked here.
func (s *Store) Put(key string, r *Record) {
	s.keyed[key] = r
}

// GetKey returns the record stored under key.
func (s *Store) GetKey(key string) (*Record, bool) {
	r, ok := s.keyed[key]
	return r, ok
}

// TakeKey removes and returns the record stored under key.
func (s *Store) TakeKey(key string) (*Record, bool) {
	r, ok := s.keyed[key]
	if !ok {
		return nil, false
	}
	delete(s.keyed, key)
	return r, true
}

// TakeIndex removes and returns the record at a sequence index, leaving a
// hole. The index stays burned for the life of the store.
func (s *Store) TakeIndex(index int) (*Record, bool) {
	if index < 1 || index > len(s.seq) {
		return nil, false
	}
	r := s.seq[index-1]
	if r == nil {
		return nil, false
	}
	s.seq[index-1] = nil
	return r, true
}

// TakeItem removes the first record whose item is identical to item,
// scanning the keyed store before the sequence store.
func (s *Store) TakeItem(item any) (*Record, bool) {
	for key, r := range s.keyed {
		if identical(r.Item, item) {
			delete(s.keyed, key)
			return r, true
		}
	}
	for i, r := range s.seq {
		if r != nil && identical(r.Item, item) {
			s.seq[i] = nil
			return r, true
		}
	}
	return nil, false
}

// Len reports the number of live records across both indexes.
func (s *Store) Len() int {
	n := len(s.keyed)
	for _, r := range s.seq {
		if r != nil {
			n++
		}
	}
	return n
}

// Drain removes every record and returns them in sweep order: keyed
// entries first (map order), then sequence slots from highest index to
// lowest. The store is empty afterwards, but burned indices stay burned.
func (s *Store) Drain() []*Record {
	out := make([]*Record, 0, s.Len())
	for key, r := range s.keyed {
		delete(s.keyed, key)
		out = append(out, r)
	}
	for i := len(s.seq) - 1; i >= 0; i-- {
		if s.seq[i] != nil {
			out = append(out, s.seq[i])
			s.seq[i] = nil
		}
	}
	return out
}

// identical reports whether a and b are the same tracked item. Comparable
// types compare by value; funcs, maps, slices and channels fall back to
// pointer identity so callable items can still be found by scan.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}
