package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/go-monitors/internal/queue"
)

// blockTimeout bounds how long a test waits to decide that a call blocks.
const blockTimeout = 30 * time.Millisecond

type blockingQueue interface {
	queue.Blocking[int]
	Len() int
	Cap() int
}

func newBounded(t *testing.T, capacity int) blockingQueue {
	t.Helper()
	q, err := queue.NewBoundedBuffer[int](capacity)
	require.NoError(t, err)
	return q
}

func newChannel(t *testing.T, capacity int) blockingQueue {
	t.Helper()
	q, err := queue.NewChannelBuffer[int](capacity)
	require.NoError(t, err)
	return q
}

var implementations = []struct {
	name string
	new  func(t *testing.T, capacity int) blockingQueue
}{
	{"BoundedBuffer", newBounded},
	{"ChannelBuffer", newChannel},
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := queue.NewBoundedBuffer[int](capacity)
		assert.ErrorIs(t, err, queue.ErrInvalidCapacity, "BoundedBuffer capacity %d", capacity)

		_, err = queue.NewChannelBuffer[int](capacity)
		assert.ErrorIs(t, err, queue.ErrInvalidCapacity, "ChannelBuffer capacity %d", capacity)
	}
}

func TestBlocking_FIFO(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 8)

			for i := 0; i < 5; i++ {
				q.Put(i)
			}

			for i := 0; i < 5; i++ {
				got, ok := q.Take()
				require.True(t, ok, "expected Take() = true for item %d", i)
				assert.Equal(t, i, got, "FIFO violation")
			}
		})
	}
}

func TestBlocking_FIFOAcrossWrap(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 3)

			next := 0
			for round := 0; round < 4; round++ {
				q.Put(round * 2)
				q.Put(round*2 + 1)
				for i := 0; i < 2; i++ {
					got, ok := q.Take()
					require.True(t, ok)
					assert.Equal(t, next, got)
					next++
				}
			}
		})
	}
}

func TestBlocking_LenCap(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 8)
			assert.Equal(t, 0, q.Len())
			assert.Equal(t, 8, q.Cap())

			q.Put(1)
			q.Put(2)
			assert.Equal(t, 2, q.Len())
		})
	}
}

func TestBlocking_CompleteDrainsBeforeEndOfStream(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 4)
			q.Put(10)
			q.Put(20)
			q.Complete()

			got, ok := q.Take()
			require.True(t, ok)
			assert.Equal(t, 10, got)

			got, ok = q.Take()
			require.True(t, ok)
			assert.Equal(t, 20, got)

			got, ok = q.Take()
			assert.False(t, ok, "expected end of stream after draining")
			assert.Zero(t, got)

			// End of stream is sticky.
			_, ok = q.Take()
			assert.False(t, ok)
		})
	}
}

func TestBlocking_CompleteIdempotent(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 2)
			q.Complete()
			assert.NotPanics(t, q.Complete)

			_, ok := q.Take()
			assert.False(t, ok)
		})
	}
}

func TestBlocking_PutBlocksWhileFull(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 2)
			q.Put(1)
			q.Put(2)

			put := make(chan struct{})
			go func() {
				q.Put(3)
				close(put)
			}()

			select {
			case <-put:
				t.Fatal("Put returned while the queue was full")
			case <-time.After(blockTimeout):
			}

			got, ok := q.Take()
			require.True(t, ok)
			assert.Equal(t, 1, got)

			select {
			case <-put:
			case <-time.After(time.Second):
				t.Fatal("Put not released after Take freed a slot")
			}
			assert.Equal(t, 2, q.Len())
		})
	}
}

func TestBlocking_TakeBlocksUntilPut(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 2)
			got := make(chan int, 1)
			go func() {
				v, _ := q.Take()
				got <- v
			}()

			select {
			case <-got:
				t.Fatal("Take returned on an empty, incomplete queue")
			case <-time.After(blockTimeout):
			}

			q.Put(42)
			select {
			case v := <-got:
				assert.Equal(t, 42, v)
			case <-time.After(time.Second):
				t.Fatal("Take not released after Put")
			}
		})
	}
}

func TestBlocking_CompleteReleasesBlockedConsumers(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			q := impl.new(t, 2)
			const consumers = 4
			results := make(chan bool, consumers)
			for i := 0; i < consumers; i++ {
				go func() {
					_, ok := q.Take()
					results <- ok
				}()
			}

			time.Sleep(blockTimeout)
			q.Complete()

			for i := 0; i < consumers; i++ {
				select {
				case ok := <-results:
					assert.False(t, ok, "expected end of stream")
				case <-time.After(time.Second):
					t.Fatalf("consumer %d still blocked after Complete", i)
				}
			}
		})
	}
}

func TestBoundedBuffer_Completed(t *testing.T) {
	q, err := queue.NewBoundedBuffer[string](1)
	require.NoError(t, err)

	assert.False(t, q.Completed())
	q.Complete()
	assert.True(t, q.Completed())
}

// Test that both implementations satisfy the interface
func TestBlockingInterface(t *testing.T) {
	var _ queue.Blocking[int] = (*queue.BoundedBuffer[int])(nil)
	var _ queue.Blocking[int] = (*queue.ChannelBuffer[int])(nil)
}
