package monitor

// Latch is a one-way flag: once tripped it stays tripped.
//
// Latch has no locking of its own. It lives inside the state guarded by a
// Cell and is only touched while that Cell's guard is held.
type Latch struct {
	set bool
}

// Trip sets the latch.
//
// Safe to call multiple times; it reports true only for the call that
// performed the transition, so callers can make shutdown idempotent.
func (l *Latch) Trip() bool {
	if l.set {
		return false
	}
	l.set = true
	return true
}

// Tripped returns true once Trip has been called.
func (l *Latch) Tripped() bool {
	return l.set
}
