package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Edge case from spec.md §4.2: a Reader's first read must not accept the
// version-0 (never-written) content of a slot, even though slot 0 starts at
// version 0 and snapshot(0) would happily return it.
func TestReader_NeverReturnsUnwrittenSlotContent(t *testing.T) {
	r, err := NewBroadcastRing[int](4)
	require.NoError(t, err)
	reader := r.MakeReader()

	_, ok := reader.ReadNext()
	require.False(t, ok)
}

func TestReader_AdvancesCursorOnlyOnSuccess(t *testing.T) {
	r, err := NewBroadcastRing[int](4)
	require.NoError(t, err)
	reader := r.MakeReader()

	_, ok := reader.ReadNext()
	require.False(t, ok)
	require.Equal(t, uint64(0), reader.readIndex)

	r.Enqueue(1)
	_, ok = reader.ReadNext()
	require.True(t, ok)
	require.Equal(t, uint64(1), reader.readIndex)
	require.Equal(t, int64(2), reader.LastVersion())
}

func TestReader_ReadIndexAndWriteIndexExposeLag(t *testing.T) {
	r, err := NewBroadcastRing[int](16)
	require.NoError(t, err)
	reader := r.MakeReader()

	require.Equal(t, uint64(0), reader.ReadIndex())
	require.Equal(t, uint64(0), r.WriteIndex())

	for i := 0; i < 5; i++ {
		r.Enqueue(i)
	}
	require.Equal(t, uint64(5), r.WriteIndex())
	require.Equal(t, uint64(0), reader.ReadIndex(), "reader hasn't consumed anything yet")

	for i := 0; i < 3; i++ {
		_, ok := reader.ReadNext()
		require.True(t, ok)
	}
	require.Equal(t, uint64(3), reader.ReadIndex())
	require.Equal(t, uint64(2), r.WriteIndex()-reader.ReadIndex(), "lag is writer minus reader position")
}

// P5: multiple readers sharing one producer each see the full stream
// independently.
func TestReader_MultipleIndependentReadersSeeFullStream(t *testing.T) {
	r, err := NewBroadcastRing[int](16)
	require.NoError(t, err)

	a := r.MakeReader()
	b := r.MakeReader()

	for i := 0; i < 10; i++ {
		r.Enqueue(i)
	}

	for i := 0; i < 10; i++ {
		v, ok := a.ReadNext()
		require.True(t, ok)
		require.Equal(t, i, v)
	}

	// b hasn't read anything yet; it should still see the full sequence
	// from the start, independent of a's progress.
	for i := 0; i < 10; i++ {
		v, ok := b.ReadNext()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestReader_ReadersCanInterleaveAtDifferentPositions(t *testing.T) {
	r, err := NewBroadcastRing[int](16)
	require.NoError(t, err)

	a := r.MakeReader()
	b := r.MakeReader()

	r.Enqueue(1)
	r.Enqueue(2)

	v, ok := a.ReadNext()
	require.True(t, ok)
	require.Equal(t, 1, v)

	r.Enqueue(3)

	v, ok = b.ReadNext()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = a.ReadNext()
	require.True(t, ok)
	require.Equal(t, 2, v)
}
