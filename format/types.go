// Package format defines the enumerations shared by the segment blob format.
package format

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw       EncodingType = 0x1 // TypeRaw stores packed sample units as-is.
	TypeRunLength EncodingType = 0x2 // TypeRunLength stores (run length, unit) pairs.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeRunLength:
		return "RunLength"
	default:
		return "Unknown"
	}
}

// IsValid reports whether e is a known encoding type.
func (e EncodingType) IsValid() bool {
	return e == TypeRaw || e == TypeRunLength
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}

// ParseEncodingType parses a short CLI name ("raw", "rle") or the name printed by String.
func ParseEncodingType(name string) (EncodingType, bool) {
	switch name {
	case "raw", "Raw":
		return TypeRaw, true
	case "rle", "RunLength":
		return TypeRunLength, true
	default:
		return 0, false
	}
}

// ParseCompressionType parses a lower-case CLI name or the name printed by String.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "None":
		return CompressionNone, true
	case "zstd", "Zstd":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
