package snapshot

import (
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/sigrokproject/logicstore/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		snap, err := New(2)
		require.NoError(t, err)
		assert.Equal(t, 2, snap.UnitSize())
		assert.Equal(t, 16, snap.ChannelCount())
		assert.Equal(t, 1<<DefaultScalePower, snap.ScaleFactor())
		assert.Equal(t, DefaultScalePower, snap.ScalePower())
		assert.Equal(t, DefaultLevelCount, snap.LevelCount())
		assert.False(t, snap.IsBigEndian())
		assert.Equal(t, uint64(0), snap.SampleCount())
	})

	t.Run("invalid unit size", func(t *testing.T) {
		for _, size := range []int{0, -1, 9} {
			_, err := New(size)
			require.ErrorIs(t, err, errs.ErrInvalidUnitSize, "size %d", size)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := New(1, WithScalePower(0))
		require.ErrorIs(t, err, errs.ErrInvalidScalePower)
		_, err = New(1, WithScalePower(MaxScalePower+1))
		require.ErrorIs(t, err, errs.ErrInvalidScalePower)
		_, err = New(1, WithLevelCount(0))
		require.ErrorIs(t, err, errs.ErrInvalidLevelCount)
		_, err = New(1, WithScalePower(8), WithLevelCount(MaxLevelCount))
		require.ErrorIs(t, err, errs.ErrInvalidLevelCount)
		_, err = New(1, WithInitialCapacity(-1))
		require.Error(t, err)
		_, err = New(1, WithMaxSamples(-1))
		require.Error(t, err)
		_, err = New(8, WithInitialCapacity(math.MaxInt/4))
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("geometry", func(t *testing.T) {
		snap, err := New(1, WithGeometry(2, 3))
		require.NoError(t, err)
		assert.Equal(t, 4, snap.ScaleFactor())
		assert.Equal(t, 3, snap.LevelCount())

		_, err = New(1, WithGeometry(2, 0))
		require.ErrorIs(t, err, errs.ErrInvalidLevelCount)
	})

	t.Run("initial capacity", func(t *testing.T) {
		snap, err := New(1, WithInitialCapacity(1<<16))
		require.NoError(t, err)

		st := snap.Stats()
		assert.Equal(t, 1<<16, st.Raw.Capacity)
		assert.Equal(t, 1<<12, st.Levels[0].Capacity)
		assert.Equal(t, 1<<8, st.Levels[1].Capacity)
		assert.Equal(t, 0, st.Levels[4].Capacity)
	})
}

func TestAppend_Monotonic(t *testing.T) {
	snap, err := New(1)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(1))
	var total uint64
	for range 200 {
		n := rnd.Intn(300)
		require.NoError(t, snap.Append(make([]byte, n), n))
		total += uint64(n)
		require.Equal(t, total, snap.SampleCount())
	}
}

func TestAppend_PayloadValidation(t *testing.T) {
	snap, err := New(4)
	require.NoError(t, err)

	require.ErrorIs(t, snap.Append(make([]byte, 7), 2), errs.ErrPayloadSize)
	require.ErrorIs(t, snap.Append(nil, -1), errs.ErrPayloadSize)
	require.NoError(t, snap.Append(nil, 0))
	require.NoError(t, snap.Append(make([]byte, 9), 2), "trailing bytes are ignored")
	assert.Equal(t, uint64(2), snap.SampleCount())

	// count*UnitSize wraps negative without the overflow guard
	require.ErrorIs(t, snap.Append(make([]byte, 8), math.MaxInt/4+1), errs.ErrPayloadSize)
	require.ErrorIs(t, snap.Append(make([]byte, 8), math.MaxInt), errs.ErrPayloadSize)
	assert.Equal(t, uint64(2), snap.SampleCount())
}

func TestAppend_MaxSamples(t *testing.T) {
	snap, err := New(1, WithMaxSamples(10))
	require.NoError(t, err)

	require.NoError(t, snap.Append(make([]byte, 8), 8))
	err = snap.Append(make([]byte, 3), 3)
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	assert.Equal(t, uint64(8), snap.SampleCount(), "failed append leaves state untouched")

	require.NoError(t, snap.Append(make([]byte, 2), 2))
	assert.Equal(t, uint64(10), snap.SampleCount())
}

func TestRawRoundTrip(t *testing.T) {
	for _, unitSize := range []int{1, 2, 3, 4, 8} {
		t.Run(strings.Repeat("u", unitSize), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(unitSize)))
			values := randomSignal(rnd, 5000, unitSize)

			snap, err := New(unitSize)
			require.NoError(t, err)

			packed := packUnits(unitSize, values)
			for off := 0; off < len(values); {
				n := min(1+rnd.Intn(700), len(values)-off)
				require.NoError(t, snap.Append(packed[off*unitSize:], n))
				off += n
			}

			for i, want := range values {
				got, err := snap.Sample(uint64(i))
				require.NoError(t, err)
				require.Equal(t, want, got, "sample %d", i)
			}

			b, err := snap.Bytes(0, snap.SampleCount())
			require.NoError(t, err)
			require.Equal(t, packed, b)
		})
	}
}

func TestSingleUnitAppends(t *testing.T) {
	snap, err := New(1)
	require.NoError(t, err)

	const n = 100_000
	for i := range n {
		require.NoError(t, snap.Append([]byte{byte(i * 7)}, 1))
	}

	require.Equal(t, uint64(n), snap.SampleCount())
	for i := range n {
		v, err := snap.Sample(uint64(i))
		require.NoError(t, err)
		require.Equal(t, uint64(byte(i*7)), v)
	}
	assert.GreaterOrEqual(t, snap.Stats().Raw.Capacity, n)
}

func TestBigEndianUnits(t *testing.T) {
	snap, err := New(2, WithBigEndianUnits())
	require.NoError(t, err)
	require.True(t, snap.IsBigEndian())
	require.NoError(t, snap.Append([]byte{0x01, 0x00, 0x00, 0x01}, 2))

	v, err := snap.Sample(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0100), v)

	high, err := snap.StateAt(1, 0)
	require.NoError(t, err)
	assert.True(t, high)
}

func TestSampleAccessors(t *testing.T) {
	snap := newFilled(t, 1, []uint64{0x00, 0x05, 0x04})

	_, err := snap.Sample(3)
	require.ErrorIs(t, err, errs.ErrSampleOutOfRange)

	high, err := snap.StateAt(1, 2)
	require.NoError(t, err)
	assert.True(t, high)
	high, err = snap.StateAt(1, 1)
	require.NoError(t, err)
	assert.False(t, high)

	_, err = snap.StateAt(0, 8)
	require.ErrorIs(t, err, errs.ErrChannelOutOfRange)
	_, err = snap.StateAt(9, 0)
	require.ErrorIs(t, err, errs.ErrSampleOutOfRange)

	b, err := snap.Bytes(1, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 0x04}, b)
	b, err = snap.Bytes(2, 1)
	require.NoError(t, err)
	assert.Empty(t, b)
	_, err = snap.Bytes(4, 5)
	require.ErrorIs(t, err, errs.ErrInvalidRange)
}

func TestSubsample(t *testing.T) {
	snap := newFilled(t, 1, []uint64{1, 1, 1, 1, 1, 0, 1, 1}, WithScalePower(2), WithLevelCount(2))

	assert.Equal(t, uint64(1), snap.Subsample(RawLevel, 4))
	assert.Equal(t, uint64(0), snap.Subsample(0, 0), "no transition in samples 0..3")
	assert.Equal(t, uint64(1), snap.Subsample(0, 1), "transitions at 5 and 6")

	assert.Panics(t, func() { snap.Subsample(0, 2) })
	assert.Panics(t, func() { snap.Subsample(1, 0) }, "level 1 has no complete unit yet")
	assert.Panics(t, func() { snap.Subsample(2, 0) })
	assert.Panics(t, func() { snap.Subsample(-2, 0) })
}

func TestPow2Ceil(t *testing.T) {
	snap, err := New(1, WithScalePower(2))
	require.NoError(t, err)

	tests := []struct {
		x     uint64
		power int
		want  uint64
	}{
		{0, 1, 0},
		{1, 1, 4},
		{4, 1, 4},
		{5, 1, 8},
		{5, 2, 16},
		{17, 2, 32},
		{7, 0, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, snap.Pow2Ceil(tt.x, tt.power), "Pow2Ceil(%d, %d)", tt.x, tt.power)
	}
}

func TestLoggerReceivesGrowth(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	snap, err := New(1, WithLogger(logger), WithScalePower(1))
	require.NoError(t, err)
	require.NoError(t, snap.Append(make([]byte, 4096), 4096))

	out := buf.String()
	assert.Contains(t, out, "raw sample buffer grown")
	assert.Contains(t, out, "mip-map level grown")
}

func BenchmarkAppend(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	batch := packUnits(1, randomSignal(rnd, 1<<16, 1))

	for b.Loop() {
		snap, _ := New(1)
		for range 16 {
			_ = snap.Append(batch, 1<<16)
		}
	}
}
