// Package monitor provides the guarded state cell shared by the
// coordination primitives in this module.
//
// A Cell pairs one mutex with one condition variable. Callers mutate the
// state they own only inside Do, block with WaitUntil, and finish every
// transition that could satisfy a waiter with Broadcast:
//
//	c.Do(func() {
//	    c.WaitUntil(func() bool { return q.count < q.cap })
//	    q.push(v)
//	    c.Broadcast()
//	})
//
// Broadcast is used instead of Signal because several distinct predicates
// share the one condition; a single wake could land on a waiter whose
// predicate is still false while the waiter that could proceed sleeps on.
package monitor

import "sync"

// Cell is a mutual-exclusion guard plus a condition for predicate waits.
//
// A Cell must not be copied after first use. The primitives that embed it
// hold a *Cell.
type Cell struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// NewCell creates a Cell ready for use.
func NewCell() *Cell {
	c := &Cell{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Do runs fn with the guard held.
//
// fn must not call Do on the same Cell, and must not block on another
// primitive: cells are leaves.
func (c *Cell) Do(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// WaitUntil blocks until pred reports true.
//
// The guard must be held (call it inside Do). pred is re-evaluated after
// every wake, so spurious and broadcast wakeups are harmless.
func (c *Cell) WaitUntil(pred func() bool) {
	for !pred() {
		c.cond.Wait()
	}
}

// Broadcast wakes every goroutine blocked in WaitUntil.
// Call it with the guard held, after the mutation.
func (c *Cell) Broadcast() {
	c.cond.Broadcast()
}
