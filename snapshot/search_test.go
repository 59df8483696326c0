package snapshot

import (
	"math/rand"
	"testing"

	"github.com/sigrokproject/logicstore/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPrevEdge_MatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	values := randomSignal(rnd, 30_000, 1)
	snap := newFilled(t, 1, values, WithScalePower(2), WithLevelCount(6))
	n := uint64(len(values))

	for ch := range 8 {
		all := bruteEdges(values, 0, n, ch)

		for range 200 {
			from := uint64(rnd.Int63n(int64(n + 10)))

			var wantNext, wantPrev *Edge
			for i := range all {
				if all[i].Index >= from {
					wantNext = &all[i]
					break
				}
			}
			for i := len(all) - 1; i >= 0; i-- {
				if all[i].Index <= from {
					wantPrev = &all[i]
					break
				}
			}

			next, ok, err := snap.NextEdge(from, ch)
			require.NoError(t, err)
			if wantNext == nil {
				require.False(t, ok, "from=%d ch=%d", from, ch)
			} else {
				require.True(t, ok, "from=%d ch=%d", from, ch)
				require.Equal(t, *wantNext, next)
			}

			prev, ok, err := snap.PrevEdge(from, ch)
			require.NoError(t, err)
			if wantPrev == nil {
				require.False(t, ok, "from=%d ch=%d", from, ch)
			} else {
				require.True(t, ok, "from=%d ch=%d", from, ch)
				require.Equal(t, *wantPrev, prev)
			}
		}
	}
}

func TestNextPrevEdge_Simple(t *testing.T) {
	values := make([]uint64, 5000)
	for i := 1234; i < 4000; i++ {
		values[i] = 1
	}
	snap := newFilled(t, 1, values)

	e, ok, err := snap.NextEdge(0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Edge{Index: 1234, Rising: true}, e)

	e, ok, err = snap.NextEdge(1235, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Edge{Index: 4000, Rising: false}, e)

	_, ok, err = snap.NextEdge(4001, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	e, ok, err = snap.PrevEdge(3999, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1234), e.Index)

	_, ok, err = snap.PrevEdge(1233, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	e, ok, err = snap.PrevEdge(1<<40, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(4000), e.Index)

	_, ok, err = snap.NextEdge(0, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = snap.NextEdge(0, 8)
	require.ErrorIs(t, err, errs.ErrChannelOutOfRange)
	_, _, err = snap.PrevEdge(0, -1)
	require.ErrorIs(t, err, errs.ErrChannelOutOfRange)
}

func TestNextPrevEdge_Empty(t *testing.T) {
	snap, err := New(1)
	require.NoError(t, err)

	_, ok, err := snap.NextEdge(0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = snap.PrevEdge(10, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
