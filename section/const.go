package section

import "github.com/sigrokproject/logicstore/format"

const (
	// Bit masks
	ReservedBitMask  = 0x0001 // Mask for reserved bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicSegmentV1Opt = 0xEC10 // MagicSegmentV1Opt is the version 1 magic number of the segment format.

	// Payload encodings - using format package constants
	EncodingRaw       = uint8(format.TypeRaw)       // EncodingRaw stores packed units.
	EncodingRunLength = uint8(format.TypeRunLength) // EncodingRunLength stores (run, unit) pairs.

	// Payload compression - using format package constants
	CompressionNone = uint8(format.CompressionNone) // CompressionNone represents an uncompressed payload.
	CompressionZstd = uint8(format.CompressionZstd) // CompressionZstd represents a Zstandard compressed payload.
	CompressionS2   = uint8(format.CompressionS2)   // CompressionS2 represents an S2 compressed payload.
	CompressionLZ4  = uint8(format.CompressionLZ4)  // CompressionLZ4 represents an LZ4 compressed payload.
)

// offset and section sizes in the segment blob
const (
	HeaderSize    = 32         // fixed header size in bytes
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
