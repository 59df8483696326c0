package snapshot

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mipMapGeometries = []struct {
	power  int
	levels int
}{
	{1, 12},
	{2, 6},
	{DefaultScalePower, DefaultLevelCount},
}

func TestMipMap_Invariants(t *testing.T) {
	for _, g := range mipMapGeometries {
		for _, unitSize := range []int{1, 2, 4} {
			t.Run(fmt.Sprintf("power=%d/levels=%d/unit=%d", g.power, g.levels, unitSize), func(t *testing.T) {
				rnd := rand.New(rand.NewSource(int64(g.power*100 + unitSize)))
				values := randomSignal(rnd, 40_000, unitSize)
				packed := packUnits(unitSize, values)

				snap, err := New(unitSize, WithScalePower(g.power), WithLevelCount(g.levels))
				require.NoError(t, err)

				for off := 0; off < len(values); {
					n := min(rnd.Intn(3000), len(values)-off)
					require.NoError(t, snap.Append(packed[off*unitSize:], n))
					off += n
					requireMipMapConsistent(t, snap, values[:off])
				}
			})
		}
	}
}

// requireMipMapConsistent checks level lengths, the level 0 transition
// summary and the OR invariant of every higher level.
func requireMipMapConsistent(t *testing.T, snap *Snapshot, values []uint64) {
	t.Helper()

	f := snap.ScaleFactor()
	levels := snap.Levels()

	srcLen := len(values)
	for l, ls := range levels {
		require.Equal(t, srcLen/f, ls.Length, "level %d length", l)
		require.LessOrEqual(t, ls.Length, ls.Capacity)
		srcLen = ls.Length
	}

	// Level 0 only needs checking for the newest units but the full sweep
	// keeps the helper simple; the inputs are small.
	for o := 0; o < levels[0].Length; o++ {
		var want uint64
		for k := o * f; k < (o+1)*f; k++ {
			if k > 0 {
				want |= values[k] ^ values[k-1]
			}
		}
		require.Equal(t, want, snap.Subsample(0, uint64(o)), "level 0 unit %d", o)
	}

	for l := 1; l < len(levels); l++ {
		for o := 0; o < levels[l].Length; o++ {
			var want uint64
			for k := o * f; k < (o+1)*f; k++ {
				want |= snap.Subsample(l-1, uint64(k))
			}
			require.Equal(t, want, snap.Subsample(l, uint64(o)), "level %d unit %d", l, o)
		}
	}
}

func TestStats(t *testing.T) {
	snap := newFilled(t, 2, make([]uint64, 1000), WithScalePower(2), WithLevelCount(3))

	st := snap.Stats()
	assert.Equal(t, 2, st.UnitSize)
	assert.Equal(t, uint64(1000), st.SampleCount)
	assert.Equal(t, RawLevel, st.Raw.Level)
	assert.Equal(t, 1000, st.Raw.Length)
	assert.Equal(t, uint64(1), st.Raw.Span)

	require.Len(t, st.Levels, 3)
	assert.Equal(t, []int{250, 62, 15}, []int{st.Levels[0].Length, st.Levels[1].Length, st.Levels[2].Length})
	assert.Equal(t, []uint64{4, 16, 64}, []uint64{st.Levels[0].Span, st.Levels[1].Span, st.Levels[2].Span})

	want := st.Raw.Capacity * 2
	for _, l := range st.Levels {
		want += l.Capacity * 2
	}
	assert.Equal(t, want, st.AllocatedBytes)
}

func TestMipMap_QuietSignalStaysClear(t *testing.T) {
	// A channel held high must not mark any span active.
	values := make([]uint64, 1<<14)
	for i := range values {
		values[i] = 0x80
	}
	snap := newFilled(t, 1, values)

	for _, ls := range snap.Levels() {
		for o := 0; o < ls.Length; o++ {
			require.Zero(t, snap.Subsample(ls.Level, uint64(o)))
		}
	}
}
