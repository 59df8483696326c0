package compress

// ZstdCompressor provides Zstandard compression of segment payloads.
//
// It gives the best ratio of the built-in codecs and suits segments written
// once and kept for later analysis.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
