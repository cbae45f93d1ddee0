package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlot_FreshSlotIsEvenAndZero(t *testing.T) {
	s := newSeqLockSlot[int](cellTearable)
	require.Equal(t, int64(0), s.version.Load())

	v, ok, version := s.Snapshot(0)
	require.True(t, ok)
	require.Zero(t, v)
	require.Equal(t, int64(0), version)
}

func TestSlot_MinVersionSuppressesUnwrittenSlot(t *testing.T) {
	s := newSeqLockSlot[int](cellTearable)

	_, ok, version := s.Snapshot(1)
	require.False(t, ok)
	require.Equal(t, int64(0), version)
}

func TestSlot_PublishThenSnapshotRoundTrips(t *testing.T) {
	for _, mode := range []cellMode{cellTearable, cellAtomic} {
		s := newSeqLockSlot[int](mode)
		s.Publish(42)

		require.Equal(t, int64(2), s.version.Load())

		v, ok, version := s.Snapshot(1)
		require.True(t, ok)
		require.Equal(t, 42, v)
		require.Equal(t, int64(2), version)
	}
}

func TestSlot_VersionIncrementsByTwoPerPublish(t *testing.T) {
	s := newSeqLockSlot[int](cellTearable)
	for i := 1; i <= 5; i++ {
		s.Publish(i)
		require.Equal(t, int64(2*i), s.version.Load())
		require.Zero(t, s.version.Load()%2, "version must be even when quiescent")
	}
}

func TestSlot_ByteAtomicRoundTripsNonPowerOfTwoStruct(t *testing.T) {
	type triple struct {
		A, B, C int32
	}
	s := newSeqLockSlot[triple](cellAtomic)
	s.Publish(triple{A: 1, B: 2, C: 3})

	v, ok, _ := s.Snapshot(1)
	require.True(t, ok)
	require.Equal(t, triple{A: 1, B: 2, C: 3}, v)
}

func TestSlot_CloneFromCopiesValueAndVersion(t *testing.T) {
	src := newSeqLockSlot[int](cellTearable)
	src.Publish(7)
	src.Publish(9)

	dst := newSeqLockSlot[int](cellTearable)
	dst.CloneFrom(&src)

	require.Equal(t, src.version.Load(), dst.version.Load())
	v, ok, _ := dst.Snapshot(0)
	require.True(t, ok)
	require.Equal(t, 9, v)
}
