// Package compress provides the compression codecs applied to segment payloads.
//
// Compression runs after encoding. A run-length encoded payload of a mostly
// idle capture is already small; the codecs mainly help raw payloads and
// payloads of busy buses, where repeating bit patterns compress well.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - format.CompressionNone: returns the input unchanged.
//   - format.CompressionZstd: best ratio. The pure Go klauspost/compress
//     implementation is used by default; building with the gozstd tag and
//     cgo enabled switches to valyala/gozstd.
//   - format.CompressionS2: fast with a good ratio (klauspost/compress/s2).
//   - format.CompressionLZ4: fastest decompression (pierrec/lz4 block format,
//     prefixed with the uncompressed length).
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(stored)
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
