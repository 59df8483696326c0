package hash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Checksum([]byte(tt.data)))
		})
	}
}

func TestChecksum_MatchesStreamingDigest(t *testing.T) {
	payload := make([]byte, 10_000)
	rnd := rand.New(rand.NewSource(7))
	_, _ = rnd.Read(payload)

	d := NewDigest()
	for off := 0; off < len(payload); off += 777 {
		end := min(off+777, len(payload))
		n, err := d.Write(payload[off:end])
		require.NoError(t, err)
		require.Equal(t, end-off, n)
	}

	assert.Equal(t, Checksum(payload), d.Sum64())
}

func BenchmarkChecksum(b *testing.B) {
	payload := make([]byte, 64*1024)
	b.SetBytes(int64(len(payload)))
	for b.Loop() {
		Checksum(payload)
	}
}
