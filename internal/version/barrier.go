package version

import "github.com/randomizedcoder/go-monitors/internal/monitor"

// Barrier is the version-barrier rendezvous.
//
// Writers wait on "reads >= RequiredReads", readers on "version changed";
// both predicates share one condition, so every write and every counted
// read broadcasts.
type Barrier struct {
	cfg  Config
	cell *monitor.Cell

	c, d    int
	version int
	reads   int // reads since the last write
	writes  int
	done    monitor.Latch
}

// New creates a Barrier at version 0.
func New(cfg Config) (*Barrier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Barrier{
		cfg:  cfg,
		cell: monitor.NewCell(),
		c:    cfg.InitialC,
		d:    cfg.InitialD,
	}, nil
}

// WriterAdvance applies delta to the pair and publishes a new version.
//
// It blocks until RequiredReads reads of the current version have been
// counted. Returns false, without writing, once the barrier is done.
func (b *Barrier) WriterAdvance(delta int) bool {
	var wrote bool
	b.cell.Do(func() {
		b.cell.WaitUntil(func() bool {
			return b.reads >= b.cfg.RequiredReads || b.done.Tripped()
		})
		if b.done.Tripped() {
			return
		}

		b.c += delta
		b.d -= delta
		b.version++
		b.reads = 0
		b.writes++
		if b.writes >= b.cfg.WriteQuota {
			b.done.Trip()
		}
		wrote = true

		b.cell.Broadcast()
	})
	return wrote
}

// ReadNext blocks until a version other than *lastSeen is published and
// returns it, updating *lastSeen and counting the read.
//
// Once the barrier is done ReadNext returns immediately with Done set; a
// terminal read is not counted and does not update *lastSeen.
func (b *Barrier) ReadNext(lastSeen *int) Snapshot {
	var s Snapshot
	b.cell.Do(func() {
		b.cell.WaitUntil(func() bool {
			return b.version != *lastSeen || b.done.Tripped()
		})

		s = b.snapshot()
		if b.done.Tripped() {
			s.Done = true
			return
		}

		b.reads++
		*lastSeen = b.version

		b.cell.Broadcast()
	})
	return s
}

// Current returns the pair without blocking. Done reports whether the
// barrier has finished.
func (b *Barrier) Current() Snapshot {
	var s Snapshot
	b.cell.Do(func() {
		s = b.snapshot()
		s.Done = b.done.Tripped()
	})
	return s
}

// Done returns true once WriteQuota writes have happened.
func (b *Barrier) Done() bool {
	var done bool
	b.cell.Do(func() { done = b.done.Tripped() })
	return done
}

// Writes returns the number of completed writes.
func (b *Barrier) Writes() int {
	var n int
	b.cell.Do(func() { n = b.writes })
	return n
}

func (b *Barrier) snapshot() Snapshot {
	return Snapshot{C: b.c, D: b.d, Version: b.version}
}
