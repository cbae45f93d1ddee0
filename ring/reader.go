package ring

// Reader is a private cursor over a BroadcastRing. Any number of Readers may
// coexist and read_next concurrently with each other and with the producer;
// a Reader's state is never shared.
type Reader[T any] struct {
	ring        *BroadcastRing[T]
	readIndex   uint64
	lastVersion int64
}

// ReadNext returns the next item in this Reader's view of the stream, or
// ok=false if the Reader has caught up to the producer at this position.
// Lock-free. If the Reader has fallen more than Cap() positions behind, the
// producer has overtaken it: the returned item is whatever is current, not
// the logically-next one, and the skip is not reported here — use
// ReadNextVersioned to detect the gap (spec.md §4.4, "Overrun").
func (rd *Reader[T]) ReadNext() (value T, ok bool) {
	value, _, ok = rd.ReadNextVersioned()
	return value, ok
}

// ReadNextVersioned is ReadNext plus the observed slot version, so a caller
// can detect overrun: if observedVersion jumps by more than 2 past the
// Reader's previous observed version, items were lost in between.
func (rd *Reader[T]) ReadNextVersioned() (value T, observedVersion int64, ok bool) {
	i := rd.readIndex & rd.ring.mask
	cycle := rd.readIndex / rd.ring.capacity
	expectedMin := int64(2*cycle + 2)

	v, found, observed := rd.ring.store.slot(i).Snapshot(expectedMin)
	if !found {
		return value, observed, false
	}

	rd.lastVersion = observed
	rd.readIndex++
	return v, observed, true
}

// LastVersion returns the version observed by the most recent successful
// ReadNext/ReadNextVersioned call, or 0 if none has succeeded yet.
func (rd *Reader[T]) LastVersion() int64 { return rd.lastVersion }

// ReadIndex returns this Reader's current position, i.e. the number of
// items it has successfully consumed so far. Combined with the ring's
// WriteIndex, this gives a monitoring goroutine the reader's lag.
func (rd *Reader[T]) ReadIndex() uint64 { return rd.readIndex }
