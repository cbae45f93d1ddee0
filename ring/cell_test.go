package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayloadCell_TearableRoundTrip(t *testing.T) {
	c := newPayloadCell[int](cellTearable)
	c.store(123)
	require.Equal(t, 123, c.load())
}

func TestPayloadCell_AtomicRoundTripExactWordMultiple(t *testing.T) {
	c := newPayloadCell[int64](cellAtomic)
	require.Len(t, c.words, 1)
	c.store(-5)
	require.Equal(t, int64(-5), c.load())
}

func TestPayloadCell_AtomicRoundTripNonWordMultiple(t *testing.T) {
	type odd struct {
		A uint8
		B uint16
		C uint32
	}
	c := newPayloadCell[odd](cellAtomic)
	v := odd{A: 7, B: 1000, C: 99999}
	c.store(v)
	require.Equal(t, v, c.load())
}

func TestPayloadCell_AtomicRoundTripLargeStruct(t *testing.T) {
	type big struct {
		A, B, C, D int64
		E, F       int32
	}
	c := newPayloadCell[big](cellAtomic)
	require.Len(t, c.words, 5) // 8+8+8+8+4+4 = 40 bytes -> 5 words
	v := big{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	c.store(v)
	require.Equal(t, v, c.load())
}
