package section

import (
	"fmt"

	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/format"
)

// SegmentFlag represents the packed flag field at the start of a segment header.
type SegmentFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be set to 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the segment format:
	//   - 0xEC10 (0b1110_1100_0001_0000): segment format v1
	Options uint16

	// EncodingType is the format.EncodingType of the payload.
	EncodingType uint8
	// CompressionType is the format.CompressionType of the payload.
	CompressionType uint8
}

// NewSegmentFlag creates a SegmentFlag for a little-endian, raw, uncompressed payload.
func NewSegmentFlag() SegmentFlag {
	flag := SegmentFlag{
		Options:         MagicSegmentV1Opt,
		EncodingType:    EncodingRaw,
		CompressionType: CompressionNone,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f SegmentFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f SegmentFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *SegmentFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *SegmentFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f SegmentFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Encoding returns the payload encoding.
func (f SegmentFlag) Encoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// SetEncoding sets the payload encoding.
func (f *SegmentFlag) SetEncoding(enc format.EncodingType) {
	f.EncodingType = uint8(enc)
}

// Compression returns the payload compression.
func (f SegmentFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression.
func (f *SegmentFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// IsValidMagicNumber checks if the magic number is valid.
func (f SegmentFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicSegmentV1Opt
}

// Validate checks if the flag contains valid values.
func (f SegmentFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagic, f.GetMagicNumber())
	}

	if !f.Encoding().IsValid() {
		return fmt.Errorf("%w: 0x%02X", errs.ErrInvalidEncoding, f.EncodingType)
	}

	if !f.Compression().IsValid() {
		return fmt.Errorf("%w: 0x%02X", errs.ErrInvalidCompression, f.CompressionType)
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f SegmentFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
