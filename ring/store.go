package ring

// slotStore abstracts over the two physical layouts a BroadcastRing can use
// for its backing slots: a plain contiguous array, or one padded to a whole
// cache line per slot. Both satisfy the same access pattern so BroadcastRing
// doesn't need to know which one it was built with.
type slotStore[T any] interface {
	slot(i uint64) *SeqLockSlot[T]
	len() int
}

type plainSlotStore[T any] struct {
	slots []SeqLockSlot[T]
}

func newPlainSlotStore[T any](capacity int, mode cellMode) *plainSlotStore[T] {
	s := &plainSlotStore[T]{slots: make([]SeqLockSlot[T], capacity)}
	for i := range s.slots {
		s.slots[i] = newSeqLockSlot[T](mode)
	}
	return s
}

func (s *plainSlotStore[T]) slot(i uint64) *SeqLockSlot[T] { return &s.slots[i] }
func (s *plainSlotStore[T]) len() int                      { return len(s.slots) }

type paddedSlot[T any] struct {
	SeqLockSlot[T]
	_ cacheLinePad
}

type paddedSlotStore[T any] struct {
	slots []paddedSlot[T]
}

func newPaddedSlotStore[T any](capacity int, mode cellMode) *paddedSlotStore[T] {
	s := &paddedSlotStore[T]{slots: make([]paddedSlot[T], capacity)}
	for i := range s.slots {
		s.slots[i].SeqLockSlot = newSeqLockSlot[T](mode)
	}
	return s
}

func (s *paddedSlotStore[T]) slot(i uint64) *SeqLockSlot[T] { return &s.slots[i].SeqLockSlot }
func (s *paddedSlotStore[T]) len() int                      { return len(s.slots) }
