// Package collector provides a fixed-capacity sorted collection that many
// goroutines insert into and one reader snapshots.
//
// Entries are kept ordered by a caller-supplied key. Each insert binary
// searches the occupied prefix and shifts the suffix right, so the
// collection is sorted after every call regardless of how concurrent
// writers interleave. Equal keys keep their insertion order: a new entry
// goes after every entry with the same key.
package collector

import (
	"cmp"
	"errors"
	"fmt"
	"sort"

	"github.com/randomizedcoder/go-monitors/internal/monitor"
)

var (
	// ErrInvalidCapacity is returned when a collector is created with capacity <= 0.
	ErrInvalidCapacity = errors.New("collector: capacity must be positive")

	// ErrNilKey is returned when a collector is created without a key function.
	ErrNilKey = errors.New("collector: key function must not be nil")

	// ErrCapacityExceeded is returned by InsertSorted when the collector is full.
	ErrCapacityExceeded = errors.New("collector: capacity exceeded")
)

// Sorted keeps up to Cap() items in non-decreasing key order.
//
// keyOf must be pure: it is evaluated once per inserted item and the result
// is stored next to the item.
type Sorted[T any, K cmp.Ordered] struct {
	keyOf func(T) K
	cell  *monitor.Cell

	items []T
	keys  []K
	count int // items[:count] is the occupied, sorted prefix
}

// New creates a Sorted collector for at most capacity items.
func New[T any, K cmp.Ordered](capacity int, keyOf func(T) K) (*Sorted[T, K], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if keyOf == nil {
		return nil, ErrNilKey
	}
	return &Sorted[T, K]{
		keyOf: keyOf,
		cell:  monitor.NewCell(),
		items: make([]T, capacity),
		keys:  make([]K, capacity),
	}, nil
}

// InsertSorted stores item at its ordered position.
//
// Returns ErrCapacityExceeded, leaving the collector unchanged, when it
// already holds Cap() items.
func (s *Sorted[T, K]) InsertSorted(item T) error {
	key := s.keyOf(item)

	var err error
	s.cell.Do(func() {
		if s.count == len(s.items) {
			err = fmt.Errorf("%w (capacity %d)", ErrCapacityExceeded, len(s.items))
			return
		}

		// Right-most position that keeps the prefix sorted.
		i := sort.Search(s.count, func(j int) bool { return s.keys[j] > key })

		copy(s.items[i+1:s.count+1], s.items[i:s.count])
		copy(s.keys[i+1:s.count+1], s.keys[i:s.count])
		s.items[i] = item
		s.keys[i] = key
		s.count++
	})
	return err
}

// Snapshot returns a copy of the collected items in key order.
//
// Safe to call while inserts are in progress; the copy reflects one
// consistent state.
func (s *Sorted[T, K]) Snapshot() []T {
	var out []T
	s.cell.Do(func() {
		out = make([]T, s.count)
		copy(out, s.items[:s.count])
	})
	return out
}

// Len returns the number of collected items.
func (s *Sorted[T, K]) Len() int {
	var n int
	s.cell.Do(func() { n = s.count })
	return n
}

// Cap returns the maximum number of items.
func (s *Sorted[T, K]) Cap() int {
	return len(s.items)
}
