package snapshot

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/sigrokproject/logicstore/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgesForChannels(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	values := randomSignal(rnd, 20_000, 1)
	snap := newFilled(t, 1, values)

	channels := []int{0, 3, 5, 7}
	got, err := snap.EdgesForChannels(context.Background(), 100, 19_000, 64, channels)
	require.NoError(t, err)
	require.Len(t, got, len(channels))

	for _, ch := range channels {
		assert.Equal(t, bruteEdges(values, 100, 19_000, ch), got[ch], "channel %d", ch)
	}
}

func TestEdgesForChannels_Errors(t *testing.T) {
	snap := newFilled(t, 1, []uint64{0, 1, 0})

	_, err := snap.EdgesForChannels(context.Background(), 0, 3, 1, []int{0, 12})
	require.ErrorIs(t, err, errs.ErrChannelOutOfRange)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = snap.EdgesForChannels(ctx, 0, 3, 1, []int{0, 1})
	require.ErrorIs(t, err, context.Canceled)

	got, err := snap.EdgesForChannels(context.Background(), 0, 3, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEdgeSet(t *testing.T) {
	// Channel 0 toggles at 10 and 30, channel 1 at 20 and 30.
	values := make([]uint64, 40)
	for i := range values {
		if i >= 10 && i < 30 {
			values[i] |= 0x01
		}
		if i >= 20 && i < 30 {
			values[i] |= 0x02
		}
	}
	snap := newFilled(t, 1, values)

	set, err := snap.EdgeSetFor(context.Background(), 0, 40, 1, []int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, uint64(3), set.Count())
	assert.Equal(t, []uint64{10, 20, 30}, set.Indices())
	assert.True(t, set.Contains(20))
	assert.False(t, set.Contains(21))

	tests := []struct {
		at                  uint64
		next, prev, nearest uint64
		hasNext, hasPrev    bool
	}{
		{at: 0, next: 10, hasNext: true, nearest: 10},
		{at: 10, next: 10, prev: 10, hasNext: true, hasPrev: true, nearest: 10},
		{at: 14, next: 20, prev: 10, hasNext: true, hasPrev: true, nearest: 10},
		{at: 15, next: 20, prev: 10, hasNext: true, hasPrev: true, nearest: 10},
		{at: 16, next: 20, prev: 10, hasNext: true, hasPrev: true, nearest: 20},
		{at: 35, prev: 30, hasPrev: true, nearest: 30},
	}
	for _, tt := range tests {
		next, ok := set.Next(tt.at)
		assert.Equal(t, tt.hasNext, ok, "Next(%d)", tt.at)
		if ok {
			assert.Equal(t, tt.next, next, "Next(%d)", tt.at)
		}

		prev, ok := set.Prev(tt.at)
		assert.Equal(t, tt.hasPrev, ok, "Prev(%d)", tt.at)
		if ok {
			assert.Equal(t, tt.prev, prev, "Prev(%d)", tt.at)
		}

		nearest, ok := set.Nearest(tt.at)
		require.True(t, ok)
		assert.Equal(t, tt.nearest, nearest, "Nearest(%d)", tt.at)
	}

	empty, err := snap.EdgeSetFor(context.Background(), 0, 40, 1, []int{7})
	require.NoError(t, err)
	_, ok := empty.Nearest(5)
	assert.False(t, ok)
}

func TestConcurrentAppendAndQuery(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	values := randomSignal(rnd, 200_000, 2)
	packed := packUnits(2, values)

	snap, err := New(2, WithScalePower(2), WithLevelCount(8))
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for off := 0; off < len(values); off += 1000 {
			n := min(1000, len(values)-off)
			if err := snap.Append(packed[off*2:], n); err != nil {
				t.Errorf("append: %v", err)
				return
			}
		}
	}()

	for r := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := r * 3
			for {
				select {
				case <-done:
					return
				default:
				}

				n := snap.SampleCount()
				edges, err := snap.Edges(0, n, 256, ch)
				if err != nil {
					t.Errorf("edges: %v", err)
					return
				}
				// Whatever prefix was visible must be answered exactly.
				want := bruteEdges(values[:n], 0, n, ch)
				if len(edges) != len(want) {
					t.Errorf("prefix %d: got %d edges, want %d", n, len(edges), len(want))
					return
				}
			}
		}()
	}

	wg.Wait()
	require.Equal(t, uint64(len(values)), snap.SampleCount())
}
