// Package ring implements a single-producer / multi-consumer broadcast ring
// buffer over seqlock-protected slots. Exactly one producer goroutine may
// call Enqueue; any number of Readers may call ReadNext concurrently with
// each other and with the producer, with no blocking on either side.
//
// The ring owns no threads and allocates nothing after construction.
package ring

import "fmt"

// BroadcastRing is a fixed-capacity array of SeqLockSlots indexed modulo
// capacity by a monotonically increasing producer sequence number.
type BroadcastRing[T any] struct {
	store      slotStore[T]
	mask       uint64
	capacity   uint64
	writeIndex uint64 // producer-owned only; never read by consumers
}

// NewBroadcastRing builds a ring with the given slot count, which must be a
// power of two (spec.md §3, "N is a compile-time power-of-two capacity").
func NewBroadcastRing[T any](capacity int, opts ...Option) (*BroadcastRing[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("ring: capacity must be a power of two, got %d", capacity)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := cfg.cellMode()

	var store slotStore[T]
	if cfg.cacheLineIsolation {
		store = newPaddedSlotStore[T](capacity, mode)
	} else {
		store = newPlainSlotStore[T](capacity, mode)
	}

	return &BroadcastRing[T]{
		store:    store,
		mask:     uint64(capacity - 1),
		capacity: uint64(capacity),
	}, nil
}

// Cap returns the ring's slot count.
func (r *BroadcastRing[T]) Cap() int { return int(r.capacity) }

// WriteIndex returns the producer's current sequence number, i.e. the
// number of items Enqueue has published so far. Producer-only state read
// from another goroutine for monitoring purposes (e.g. reader lag); it is
// not synchronized, matching Enqueue's own documented contract.
func (r *BroadcastRing[T]) WriteIndex() uint64 { return r.writeIndex }

// Enqueue publishes v into the next slot and advances the producer cursor.
// Producer-only, wait-free. No check for consumer lag: slots are overwritten
// unconditionally (spec.md §4.3).
func (r *BroadcastRing[T]) Enqueue(v T) {
	i := r.writeIndex & r.mask
	r.store.slot(i).Publish(v)
	r.writeIndex++
}

// MakeReader returns a fresh Reader starting at position 0. May be called
// from any thread before the producer starts, or from the producer thread
// itself; it is not synchronized against concurrent Enqueue calls, matching
// the source's contract (spec.md §4.3).
func (r *BroadcastRing[T]) MakeReader() *Reader[T] {
	return &Reader[T]{ring: r}
}
