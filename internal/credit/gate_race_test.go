package credit_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/go-monitors/internal/credit"
)

// runSymbols runs one worker per tag until the gate stops and returns once
// every worker has exited.
func runSymbols(t *testing.T, g *credit.Gate, blocking bool) {
	t.Helper()

	tags := []struct {
		tag   string
		class credit.Class
	}{
		{"A", credit.Replenisher},
		{"B", credit.Spender},
		{"C", credit.Spender},
	}

	var wg sync.WaitGroup
	for _, s := range tags {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				var d credit.Decision
				if blocking {
					d = g.TryAdmit(s.tag, s.class)
				} else {
					d = g.Poll(s.tag, s.class)
				}
				switch d {
				case credit.Stopped:
					return
				case credit.Denied:
					runtime.Gosched()
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		require.FailNow(t, "symbol workers still running after the gate should have stopped")
	}
}

// TestGate_Race_CreditNeverNegative samples credit while replenishers and
// spenders contend. Run with: go test -race ./internal/credit
func TestGate_Race_CreditNeverNegative(t *testing.T) {
	for _, blocking := range []bool{true, false} {
		name := "poll"
		if blocking {
			name = "blocking"
		}
		t.Run(name, func(t *testing.T) {
			g := newGate(t, nil)

			var negative atomic.Bool
			stopSampler := make(chan struct{})
			samplerDone := make(chan struct{})
			go func() {
				defer close(samplerDone)
				for {
					select {
					case <-stopSampler:
						return
					default:
					}
					if g.Credit() < 0 {
						negative.Store(true)
					}
				}
			}()

			runSymbols(t, g, blocking)
			close(stopSampler)
			<-samplerDone

			assert.False(t, negative.Load(), "credit observed below zero")
			assert.GreaterOrEqual(t, g.Credit(), 0)
			assert.True(t, g.Stopped())

			// Some tag hit the quota, and the journal accounts for every grant.
			a, b, c := g.Admitted("A"), g.Admitted("B"), g.Admitted("C")
			assert.Equal(t, credit.DefaultConfig().StopQuota, max(a, b, c))
			assert.Len(t, g.Journal(), a+b+c)
		})
	}
}

// TestGate_Race_SpenderCreditAccounting replays the journal and checks that
// every spender admission happened with enough credit.
func TestGate_Race_SpenderCreditAccounting(t *testing.T) {
	g := newGate(t, nil)
	runSymbols(t, g, true)

	cfg := credit.DefaultConfig()
	c := 0
	for i, tag := range g.Journal() {
		if tag == 'A' {
			c += cfg.Replenish
			continue
		}
		require.GreaterOrEqual(t, c, cfg.Threshold, "spender %q admitted at position %d with credit %d", tag, i, c)
		c = max(0, c-cfg.Spend)
	}
	assert.Equal(t, g.Credit(), c)
}
