package queue

import "github.com/randomizedcoder/go-monitors/internal/monitor"

// BoundedBuffer is a fixed-capacity FIFO ring guarded by a single mutex.
//
// Every field below cell is read and written only inside cell.Do. Each Put,
// Take and Complete ends with a broadcast, so producers waiting for space
// and consumers waiting for items share one condition safely.
type BoundedBuffer[T any] struct {
	cell *monitor.Cell

	buf       []T
	head      int // next slot to Take from
	tail      int // next slot to Put into
	count     int
	completed monitor.Latch
}

// NewBoundedBuffer creates a BoundedBuffer holding at most capacity items.
func NewBoundedBuffer[T any](capacity int) (*BoundedBuffer[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &BoundedBuffer[T]{
		cell: monitor.NewCell(),
		buf:  make([]T, capacity),
	}, nil
}

// Put adds an item at the tail, blocking while the buffer is full.
func (b *BoundedBuffer[T]) Put(v T) {
	b.cell.Do(func() {
		b.cell.WaitUntil(func() bool { return b.count < len(b.buf) })

		b.buf[b.tail] = v
		b.tail = (b.tail + 1) % len(b.buf)
		b.count++

		b.cell.Broadcast()
	})
}

// Take removes and returns the item at the head.
//
// It blocks while the buffer is empty and not complete. When the buffer is
// complete and drained it returns the zero value and false; further calls
// keep returning false.
func (b *BoundedBuffer[T]) Take() (v T, ok bool) {
	b.cell.Do(func() {
		b.cell.WaitUntil(func() bool { return b.count > 0 || b.completed.Tripped() })
		if b.count == 0 {
			return // end of stream
		}

		v = b.buf[b.head]
		var zero T
		b.buf[b.head] = zero // drop the reference held by the ring
		b.head = (b.head + 1) % len(b.buf)
		b.count--
		ok = true

		b.cell.Broadcast()
	})
	return v, ok
}

// Complete marks the end of input and wakes all waiters.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (b *BoundedBuffer[T]) Complete() {
	b.cell.Do(func() {
		if b.completed.Trip() {
			b.cell.Broadcast()
		}
	})
}

// Completed returns true once Complete has been called.
func (b *BoundedBuffer[T]) Completed() bool {
	var done bool
	b.cell.Do(func() { done = b.completed.Tripped() })
	return done
}

// Len returns the current number of buffered items.
func (b *BoundedBuffer[T]) Len() int {
	var n int
	b.cell.Do(func() { n = b.count })
	return n
}

// Cap returns the capacity of the buffer.
func (b *BoundedBuffer[T]) Cap() int {
	return len(b.buf)
}
