package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4MaxRatio bounds the uncompressed length a block of a given size can claim.
const lz4MaxRatio = 256

var errLZ4Header = errors.New("lz4: invalid length prefix")

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression of segment payloads.
//
// A stored payload is the uvarint uncompressed length followed by an LZ4
// block. Input that LZ4 cannot shrink is stored verbatim after the prefix,
// which the decoder recognises by its length matching the prefix.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	prefix := binary.AppendUvarint(make([]byte, 0, binary.MaxVarintLen64), uint64(len(data)))
	dst := make([]byte, len(prefix)+lz4.CompressBlockBound(len(data)))
	copy(dst, prefix)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[len(prefix):])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	// n == 0 means the block is incompressible.
	if n == 0 || n >= len(data) {
		return append(dst[:len(prefix)], data...), nil
	}

	return dst[:len(prefix)+n], nil
}

// Decompress decompresses the input data into a buffer sized from the length prefix.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n := binary.Uvarint(data)
	if n <= 0 || size == 0 {
		return nil, errLZ4Header
	}
	block := data[n:]
	if size > uint64(len(block))*lz4MaxRatio+64 {
		return nil, errLZ4Header
	}

	if uint64(len(block)) == size {
		return append([]byte(nil), block...), nil
	}

	buf := make([]byte, size)
	got, err := lz4.UncompressBlock(block, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(got) != size {
		return nil, fmt.Errorf("lz4 decompression failed: got %d bytes, want %d", got, size)
	}

	return buf, nil
}
