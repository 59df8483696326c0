// Package section defines the low-level binary structures and constants of the segment blob format.
//
// A segment blob persists the raw samples of one snapshot. The mip-map is not
// stored; it is rebuilt when the samples are replayed into a new snapshot.
//
// # Segment Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (4 bytes): magic, byte order, encoding, codec   │
//	│  - Unit size, scale power, level count (4 bytes)        │
//	│  - SampleCount (8 bytes)                                │
//	│  - PayloadSize (8 bytes)                                │
//	│  - Checksum (8 bytes): xxHash64 of the stored payload   │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (PayloadSize bytes)                             │
//	│  - Encoded units, then compressed                       │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field        | Type   | Description
//	-------|--------------|--------|----------------------------------
//	0-3    | Flag         | uint32 | Options, encoding, compression
//	4      | UnitSize     | uint8  | Bytes per sample unit (1-8)
//	5      | ScalePower   | uint8  | log2 of the mip-map scale factor
//	6      | LevelCount   | uint8  | Number of mip-map levels
//	7      | Reserved     | uint8  | Must be 0
//	8-15   | SampleCount  | uint64 | Number of units in the payload
//	16-23  | PayloadSize  | uint64 | Stored payload size in bytes
//	24-31  | Checksum     | uint64 | xxHash64 of the stored payload
//
// # Flag Format
//
//	Byte 0-1 (Options, 16 bits, always little-endian):
//	  Bit 0: Reserved (must be 0)
//	  Bit 1: Endianness (0=little-endian, 1=big-endian)
//	  Bits 2-3: Reserved (must be 0)
//	  Bits 4-15: Magic number (0xEC10 for segment v1)
//
//	Byte 2 (EncodingType): 0x1=Raw, 0x2=RunLength
//
//	Byte 3 (CompressionType): 0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4
//
// The endianness bit applies to the multi-byte header fields and to the
// sample units in the payload.
//
//	flag := section.NewSegmentFlag()
//	flag.SetEncoding(format.TypeRunLength)
//	flag.SetCompression(format.CompressionZstd)
//	flag.WithBigEndian()
package section
