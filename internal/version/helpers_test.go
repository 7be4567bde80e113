package version_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitOrFail fails the test if wg does not finish in bounded time, which is
// how a goroutine left blocked on the barrier shows up.
func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 10*time.Second, 5*time.Millisecond, "goroutines still blocked on the barrier")
}
