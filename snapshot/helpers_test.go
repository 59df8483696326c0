package snapshot

import (
	"math/rand"
	"testing"

	"github.com/sigrokproject/logicstore/endian"
	"github.com/stretchr/testify/require"
)

// packUnits encodes values as little-endian units of unitSize bytes.
func packUnits(unitSize int, values []uint64) []byte {
	out := make([]byte, len(values)*unitSize)
	engine := endian.GetLittleEndianEngine()
	for i, v := range values {
		endian.PutUnit(engine, out[i*unitSize:(i+1)*unitSize], v)
	}

	return out
}

// randomSignal generates n units whose bits change in bursts separated by
// quiet runs, so the mip-map has both active and idle spans at every level.
func randomSignal(rnd *rand.Rand, n, unitSize int) []uint64 {
	mask := uint64(1)<<(8*unitSize) - 1
	if unitSize == 8 {
		mask = ^uint64(0)
	}

	out := make([]uint64, n)
	var cur uint64
	for i := 0; i < n; {
		run := 1 + rnd.Intn(1<<uint(rnd.Intn(12)))
		for j := 0; j < run && i < n; j++ {
			out[i] = cur
			i++
		}
		cur ^= rnd.Uint64() & mask & (uint64(1) << uint(rnd.Intn(8*unitSize)))
	}

	return out
}

// bruteEdges computes the expected transitions of channel in [start, end).
func bruteEdges(values []uint64, start, end uint64, channel int) []Edge {
	end = min(end, uint64(len(values)))
	out := []Edge{}
	mask := uint64(1) << channel
	for i := start + 1; i < end; i++ {
		prev := values[i-1]&mask != 0
		cur := values[i]&mask != 0
		if cur != prev {
			out = append(out, Edge{Index: i, Rising: cur})
		}
	}

	return out
}

func newFilled(t *testing.T, unitSize int, values []uint64, opts ...Option) *Snapshot {
	t.Helper()

	snap, err := New(unitSize, opts...)
	require.NoError(t, err)
	require.NoError(t, snap.Append(packUnits(unitSize, values), len(values)))

	return snap
}
