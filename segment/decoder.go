package segment

import (
	"fmt"
	"iter"
	"math"

	"github.com/sigrokproject/logicstore/compress"
	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/internal/hash"
	"github.com/sigrokproject/logicstore/section"
	"github.com/sigrokproject/logicstore/snapshot"
)

// Decoder reads a segment blob.
//
// NewDecoder validates the header, payload size and checksum; the payload is
// decompressed lazily by Units, Payload and Snapshot.
//
// Note: The Decoder is NOT thread-safe.
type Decoder struct {
	header  section.SegmentHeader
	engine  endian.EndianEngine
	stored  []byte
	payload []byte // decompressed, encoded payload
}

// NewDecoder parses and verifies the segment blob in data.
//
// Returns errs.ErrInvalidHeaderSize, errs.ErrInvalidMagic,
// errs.ErrInvalidEncoding, errs.ErrInvalidCompression,
// errs.ErrTruncatedPayload or errs.ErrChecksumMismatch.
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseSegmentHeader(data)
	if err != nil {
		return nil, err
	}

	if header.UnitSize < 1 || header.UnitSize > snapshot.MaxUnitSize {
		return nil, fmt.Errorf("%w: header declares %d", errs.ErrInvalidUnitSize, header.UnitSize)
	}
	if header.SampleCount > uint64(math.MaxInt/int(header.UnitSize)) {
		return nil, fmt.Errorf("%w: %d samples", errs.ErrCorruptPayload, header.SampleCount)
	}

	rest := data[section.PayloadOffset:]
	if uint64(len(rest)) < header.PayloadSize {
		return nil, fmt.Errorf("%w: have %d bytes, header declares %d",
			errs.ErrTruncatedPayload, len(rest), header.PayloadSize)
	}
	stored := rest[:header.PayloadSize]

	if sum := hash.Checksum(stored); sum != header.Checksum {
		return nil, fmt.Errorf("%w: computed %016x, header has %016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	return &Decoder{
		header: header,
		engine: header.Flag.GetEndianEngine(),
		stored: stored,
	}, nil
}

// Header returns the parsed segment header.
func (d *Decoder) Header() section.SegmentHeader {
	return d.header
}

// Stats compares the stored payload with the packed size of its units.
func (d *Decoder) Stats() compress.CompressionStats {
	return compress.CompressionStats{
		Algorithm:      d.header.Flag.Compression(),
		OriginalSize:   int64(d.header.SampleCount) * int64(d.header.UnitSize), //nolint:gosec
		CompressedSize: int64(d.header.PayloadSize),                            //nolint:gosec
	}
}

func (d *Decoder) decompress() ([]byte, error) {
	if d.payload != nil || d.header.PayloadSize == 0 {
		return d.payload, nil
	}

	codec, err := compress.GetCodec(d.header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(d.stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptPayload, err)
	}
	d.payload = payload

	return payload, nil
}

// Payload returns the packed sample units stored in the segment.
func (d *Decoder) Payload() ([]byte, error) {
	payload, err := d.decompress()
	if err != nil {
		return nil, err
	}

	// Reserve from the payload, not the header: SampleCount is unverified
	// until the units are decoded.
	count := int(d.header.SampleCount) //nolint:gosec
	dec := newUnitDecoder(d.header.Flag.Encoding(), d.engine, int(d.header.UnitSize))

	return dec.DecodePacked(make([]byte, 0, len(payload)), payload, count)
}

// Units iterates the sample units without materializing the packed payload.
// A corrupt payload ends the iteration early; use Payload for a checked decode.
func (d *Decoder) Units() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		payload, err := d.decompress()
		if err != nil {
			return
		}

		dec := newUnitDecoder(d.header.Flag.Encoding(), d.engine, int(d.header.UnitSize))
		for v := range dec.All(payload, int(d.header.SampleCount)) { //nolint:gosec
			if !yield(v) {
				return
			}
		}
	}
}

// Snapshot replays the stored samples into a new snapshot.
//
// The snapshot takes the unit width, byte order and mip-map geometry from the
// header; opts are applied after those and may override the geometry.
func (d *Decoder) Snapshot(opts ...snapshot.Option) (*snapshot.Snapshot, error) {
	packed, err := d.Payload()
	if err != nil {
		return nil, err
	}

	count := int(d.header.SampleCount) //nolint:gosec
	base := []snapshot.Option{
		snapshot.WithGeometry(int(d.header.ScalePower), int(d.header.LevelCount)),
		snapshot.WithInitialCapacity(count),
	}
	if d.header.Flag.IsBigEndian() {
		base = append(base, snapshot.WithBigEndianUnits())
	}

	snap, err := snapshot.New(int(d.header.UnitSize), append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := snap.Append(packed, count); err != nil {
		return nil, err
	}

	return snap, nil
}

// Decode verifies the segment blob in data and replays it into a new snapshot.
func Decode(data []byte, opts ...snapshot.Option) (*snapshot.Snapshot, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return d.Snapshot(opts...)
}
