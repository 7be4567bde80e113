package queue

import "sync"

// ChannelBuffer implements Blocking over a buffered channel.
//
// This is the standard library approach: the channel's own lock and wait
// queues play the role of the guard and condition, and closing the channel
// is the completion signal. Unlike BoundedBuffer, a Put after Complete
// panics (send on closed channel).
type ChannelBuffer[T any] struct {
	ch   chan T
	once sync.Once
}

// NewChannelBuffer creates a ChannelBuffer with the specified capacity.
func NewChannelBuffer[T any](capacity int) (*ChannelBuffer[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &ChannelBuffer[T]{
		ch: make(chan T, capacity),
	}, nil
}

// Put adds an item, blocking while the channel buffer is full.
func (q *ChannelBuffer[T]) Put(v T) {
	q.ch <- v
}

// Take removes an item, blocking while the channel is empty and open.
// Returns false once the channel is closed and drained.
func (q *ChannelBuffer[T]) Take() (T, bool) {
	v, ok := <-q.ch
	return v, ok
}

// Complete closes the channel.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (q *ChannelBuffer[T]) Complete() {
	q.once.Do(func() { close(q.ch) })
}

// Len returns the current number of buffered items.
func (q *ChannelBuffer[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelBuffer[T]) Cap() int {
	return cap(q.ch)
}
