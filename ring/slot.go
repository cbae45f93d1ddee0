package ring

import "sync/atomic"

// SeqLockSlot wraps one payload of type T with an even/odd version counter.
// version is even exactly when the cell is quiescent and odd while a publish
// is in progress (invariant V1). It increments by exactly 2 per completed
// publish (invariant V2).
type SeqLockSlot[T any] struct {
	cell    payloadCell[T]
	version atomic.Int64
}

// newSeqLockSlot builds a slot using the given payload-cell copy policy.
func newSeqLockSlot[T any](mode cellMode) SeqLockSlot[T] {
	return SeqLockSlot[T]{cell: newPayloadCell[T](mode)}
}

// Publish writes v into the slot. Wait-free, producer-only: calling this
// concurrently from two goroutines corrupts the version counter and is
// undefined, exactly as two concurrent producers are undefined for the
// whole ring.
func (s *SeqLockSlot[T]) Publish(v T) {
	s.version.Add(1) // now odd: write in progress
	s.cell.store(v)
	s.version.Add(1) // now even: write complete, release to readers
}

// Snapshot performs a lock-free optimistic read. It retries until it
// observes a stable even version on both sides of the copy. If the stable
// version is below minVersion, the slot hasn't yet reached the position the
// caller is waiting for and Snapshot reports ok=false; the caller should
// not treat this as "empty forever", only "not yet".
func (s *SeqLockSlot[T]) Snapshot(minVersion int64) (value T, ok bool, observedVersion int64) {
	for {
		v0 := s.version.Load()
		local := s.cell.load()
		v1 := s.version.Load()
		if v0%2 != 0 || v0 != v1 {
			continue // writer was or is mid-publish; retry
		}
		if v0 < minVersion {
			return value, false, v0
		}
		return local, true, v0
	}
}

// CloneFrom copies other's current value and version into s. This mirrors
// the C++ original's copy-assignment on a live slot: it is a convenience for
// bulk moves and is producer-side only — safe when s is quiescent (not being
// read concurrently) regardless of activity on other, but not safe to call
// while some Reader might be mid-Snapshot on s itself.
func (s *SeqLockSlot[T]) CloneFrom(other *SeqLockSlot[T]) {
	v, _, version := other.Snapshot(0)
	s.cell.store(v)
	s.version.Store(version)
}
