// Package version provides a version-barrier rendezvous over a pair of
// counters.
//
// Writers move the pair in lock-step (c += delta, d -= delta) and publish a
// new version, but only after RequiredReads reads of the previous version.
// Readers block until a version newer than the one they last saw is
// published, and each read they complete counts toward the writers' quota.
// After WriteQuota writes the barrier is done: blocked writers return
// without writing and blocked readers return a terminal snapshot.
//
// A reader observes the initial state (version 0) by starting from
// lastSeen = -1, so writers start blocked until enough readers have
// arrived. There must be at least RequiredReads readers, or writers wait
// forever.
package version

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a barrier is created with a
// non-positive quota.
var ErrInvalidConfig = errors.New("version: invalid configuration")

// Config holds the barrier's quotas and initial pair.
type Config struct {
	// WriteQuota is the total number of writes after which the barrier is done.
	WriteQuota int

	// RequiredReads is the number of reads needed between two writes.
	RequiredReads int

	// InitialC and InitialD seed the pair.
	InitialC int
	InitialD int
}

// DefaultConfig returns ten writes, two reads per write, and the pair
// starting at c=9, d=0.
func DefaultConfig() Config {
	return Config{
		WriteQuota:    10,
		RequiredReads: 2,
		InitialC:      9,
		InitialD:      0,
	}
}

// Validate reports a non-positive quota.
func (c Config) Validate() error {
	if c.WriteQuota <= 0 {
		return fmt.Errorf("%w: write quota must be positive, got %d", ErrInvalidConfig, c.WriteQuota)
	}
	if c.RequiredReads <= 0 {
		return fmt.Errorf("%w: required reads must be positive, got %d", ErrInvalidConfig, c.RequiredReads)
	}
	return nil
}

// Snapshot is one consistent view of the pair.
type Snapshot struct {
	C       int
	D       int
	Version int

	// Done is set on a terminal read: the barrier finished and the read
	// was not counted.
	Done bool
}
