package section

import "github.com/sigrokproject/logicstore/errs"

// SegmentHeader represents the fixed-size header at the start of a segment blob.
type SegmentHeader struct {
	// SampleCount is the number of sample units stored in the payload.
	SampleCount uint64 // byte offset 8-15
	// PayloadSize is the size in bytes of the encoded and compressed payload that follows the header.
	PayloadSize uint64 // byte offset 16-23
	// Checksum is the xxHash64 of the stored payload bytes.
	Checksum uint64 // byte offset 24-31

	// Flag is a packed field for the magic number, byte order, encoding and compression.
	Flag SegmentFlag // byte offset 0-3

	// UnitSize is the width of one sample unit in bytes.
	UnitSize uint8 // byte offset 4
	// ScalePower is the mip-map scale power of the snapshot that wrote the segment.
	ScalePower uint8 // byte offset 5
	// LevelCount is the mip-map level count of the snapshot that wrote the segment.
	LevelCount uint8 // byte offset 6
	// byte offset 7 is reserved and written as zero.
}

// NewSegmentHeader creates a SegmentHeader for units of unitSize bytes.
// SampleCount, PayloadSize and Checksum are set once the payload is encoded.
func NewSegmentHeader(unitSize, scalePower, levelCount int) *SegmentHeader {
	return &SegmentHeader{
		Flag:       NewSegmentFlag(),
		UnitSize:   uint8(unitSize),   //nolint:gosec
		ScalePower: uint8(scalePower), //nolint:gosec
		LevelCount: uint8(levelCount), //nolint:gosec
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *SegmentHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian so the byte order can be read first.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()

	h.UnitSize = data[4]
	h.ScalePower = data[5]
	h.LevelCount = data[6]
	h.SampleCount = engine.Uint64(data[8:16])
	h.PayloadSize = engine.Uint64(data[16:24])
	h.Checksum = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the SegmentHeader into a byte slice.
func (h *SegmentHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType
	b[4] = h.UnitSize
	b[5] = h.ScalePower
	b[6] = h.LevelCount
	engine.PutUint64(b[8:16], h.SampleCount)
	engine.PutUint64(b[16:24], h.PayloadSize)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseSegmentHeader parses a SegmentHeader from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 32 bytes)
//
// Returns:
//   - SegmentHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseSegmentHeader(data []byte) (SegmentHeader, error) {
	if len(data) < HeaderSize {
		return SegmentHeader{}, errs.ErrInvalidHeaderSize
	}

	h := SegmentHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return SegmentHeader{}, err
	}

	return h, nil
}
