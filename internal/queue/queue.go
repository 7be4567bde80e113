// Package queue provides bounded blocking queues with a one-shot
// end-of-input signal.
//
// This package offers two implementations of the Blocking interface:
//   - BoundedBuffer: Ring buffer guarded by a monitor.Cell
//   - ChannelBuffer: Buffered channel, closed once by Complete
//
// # Completion
//
// A producer calls Complete exactly once, after its last Put. Items already
// buffered are not discarded: consumers keep receiving them and only get
// end-of-stream (ok == false) once the buffer is also empty.
//
// Correct usage:
//   - Any number of goroutines may call Put and Take concurrently
//   - No Put may start after Complete has been called
//   - A consumer stops calling Take after the first end-of-stream
package queue

import "errors"

// ErrInvalidCapacity is returned when a queue is created with capacity <= 0.
var ErrInvalidCapacity = errors.New("queue: capacity must be positive")

// Blocking is a bounded multi-producer multi-consumer queue.
//
// Implementations block: Put waits for free space, Take waits for an item
// or for completion.
type Blocking[T any] interface {
	// Put adds an item, blocking while the queue is full.
	Put(T)

	// Take removes the oldest item, blocking while the queue is empty and
	// not complete. Returns false once the queue is complete and drained.
	Take() (T, bool)

	// Complete signals that no more items will be Put.
	// Safe to call multiple times.
	Complete()
}
