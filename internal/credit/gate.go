package credit

import (
	"strings"

	"github.com/randomizedcoder/go-monitors/internal/monitor"
)

// Gate is a credit-gated admission controller.
//
// All fields below cell are guarded by it. Every grant and the stop
// transition end with a broadcast so that blocked spenders re-check both
// the credit and the stop flag.
type Gate struct {
	cfg  Config
	cell *monitor.Cell

	credit   int
	stopped  monitor.Latch
	admitted map[string]int
	journal  strings.Builder
}

// New creates a Gate with zero credit.
func New(cfg Config) (*Gate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Gate{
		cfg:      cfg,
		cell:     monitor.NewCell(),
		admitted: make(map[string]int),
	}, nil
}

// TryAdmit attempts to admit the caller identified by tag.
//
// A stopped gate returns Stopped without blocking. A Replenisher is always
// granted. A Spender blocks until credit reaches the threshold or the gate
// stops. TryAdmit never returns Denied.
func (g *Gate) TryAdmit(tag string, class Class) Decision {
	return g.admit(tag, class, true)
}

// Poll is the non-blocking form of TryAdmit: a Spender facing too little
// credit gets Denied and is expected to retry.
func (g *Gate) Poll(tag string, class Class) Decision {
	return g.admit(tag, class, false)
}

func (g *Gate) admit(tag string, class Class, block bool) Decision {
	d := Stopped
	g.cell.Do(func() {
		if g.stopped.Tripped() {
			return
		}

		if class == Replenisher {
			g.credit += g.cfg.Replenish
		} else {
			if block {
				g.cell.WaitUntil(func() bool {
					return g.credit >= g.cfg.Threshold || g.stopped.Tripped()
				})
				if g.stopped.Tripped() {
					return
				}
			} else if g.credit < g.cfg.Threshold {
				d = Denied
				return
			}
			g.credit = max(0, g.credit-g.cfg.Spend)
		}

		g.admitted[tag]++
		g.journal.WriteString(tag)
		if g.admitted[tag] >= g.cfg.StopQuota {
			g.stopped.Trip()
		}
		d = Granted

		g.cell.Broadcast()
	})
	return d
}

// StopAll stops the gate and releases every blocked spender.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (g *Gate) StopAll() {
	g.cell.Do(func() {
		if g.stopped.Trip() {
			g.cell.Broadcast()
		}
	})
}

// Stopped returns true once the gate has stopped.
func (g *Gate) Stopped() bool {
	var stopped bool
	g.cell.Do(func() { stopped = g.stopped.Tripped() })
	return stopped
}

// Credit returns the current credit. It is never negative.
func (g *Gate) Credit() int {
	var c int
	g.cell.Do(func() { c = g.credit })
	return c
}

// Admitted returns how many times tag has been granted.
func (g *Gate) Admitted(tag string) int {
	var n int
	g.cell.Do(func() { n = g.admitted[tag] })
	return n
}

// Journal returns the granted tags concatenated in admission order.
func (g *Gate) Journal() string {
	var s string
	g.cell.Do(func() { s = g.journal.String() })
	return s
}
