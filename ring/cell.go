package ring

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"
)

// cellMode selects how a payloadCell copies bytes concurrently with a writer.
type cellMode uint8

const (
	// cellTearable performs a plain field copy. Concurrent access is a data
	// race in the abstract memory model; the enclosing SeqLockSlot discards
	// any read that raced with a publish.
	cellTearable cellMode = iota
	// cellAtomic partitions the payload into 8-byte words and moves each
	// word through sync/atomic, so no single access is ever a race. This is
	// the Go mapping of the C++ original's per-byte atomic copy — Go has no
	// public single-byte atomic type, so words stand in for bytes (see
	// SPEC_FULL.md §3).
	cellAtomic
)

// payloadCell holds one payload of type T and knows how to copy it under
// concurrent observation, per one of two policies selected at construction.
type payloadCell[T any] struct {
	mode  cellMode
	plain T
	words []atomic.Uint64 // len == ceil(sizeof(T)/8); unused in cellTearable mode
}

func newPayloadCell[T any](mode cellMode) payloadCell[T] {
	c := payloadCell[T]{mode: mode}
	if mode == cellAtomic {
		var zero T
		size := unsafe.Sizeof(zero)
		c.words = make([]atomic.Uint64, (size+7)/8)
	}
	return c
}

// store writes v into the cell under the cell's copy policy.
func (c *payloadCell[T]) store(v T) {
	if c.mode == cellTearable {
		c.plain = v
		return
	}
	storeWords(c.words, &v)
}

// load reads the current contents of the cell under the cell's copy policy.
func (c *payloadCell[T]) load() T {
	if c.mode == cellTearable {
		return c.plain
	}
	return loadWords[T](c.words)
}

// storeWords copies the bytes of *v into dst, one 8-byte word at a time,
// each word moved through a relaxed-equivalent atomic store.
func storeWords[T any](dst []atomic.Uint64, v *T) {
	size := unsafe.Sizeof(*v)
	src := unsafe.Slice((*byte)(unsafe.Pointer(v)), size)
	var buf [8]byte
	for i := range dst {
		lo := i * 8
		hi := lo + 8
		if hi > len(src) {
			hi = len(src)
		}
		buf = [8]byte{}
		copy(buf[:], src[lo:hi])
		dst[i].Store(binary.LittleEndian.Uint64(buf[:]))
	}
}

// loadWords reassembles a T from words previously written by storeWords.
func loadWords[T any](src []atomic.Uint64) T {
	var out T
	size := unsafe.Sizeof(out)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&out)), size)
	for i := range src {
		lo := i * 8
		hi := lo + 8
		if hi > len(dst) {
			hi = len(dst)
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], src[i].Load())
		copy(dst[lo:hi], buf[:hi-lo])
	}
	return out
}
