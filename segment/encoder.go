package segment

import (
	"fmt"
	"io"

	"github.com/sigrokproject/logicstore/encoding"
	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/format"
	"github.com/sigrokproject/logicstore/internal/hash"
	"github.com/sigrokproject/logicstore/internal/options"
	"github.com/sigrokproject/logicstore/section"
	"github.com/sigrokproject/logicstore/snapshot"
)

// Encode serializes the samples currently held by snap into a segment blob.
//
// The payload uses the snapshot's unit byte order, recorded in the header.
func Encode(snap *snapshot.Snapshot, opts ...EncoderOption) ([]byte, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := cfg.codec()
	if err != nil {
		return nil, err
	}

	header := section.NewSegmentHeader(snap.UnitSize(), snap.ScalePower(), snap.LevelCount())
	header.Flag.SetEncoding(cfg.encoding)
	header.Flag.SetCompression(cfg.compression)
	if snap.IsBigEndian() {
		header.Flag.WithBigEndian()
	}
	engine := header.Flag.GetEndianEngine()

	enc := newUnitEncoder(cfg.encoding, engine, snap.UnitSize())
	defer enc.Finish()

	count := snap.SampleCount()
	batch := uint64(cfg.batchUnits) //nolint:gosec
	for off := uint64(0); off < count; off += batch {
		chunk, err := snap.Bytes(off, min(off+batch, count))
		if err != nil {
			return nil, fmt.Errorf("read samples at %d: %w", off, err)
		}
		enc.WritePacked(chunk)
	}

	stored, err := codec.Compress(enc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", cfg.compression, err)
	}

	header.SampleCount = count
	header.PayloadSize = uint64(len(stored))
	header.Checksum = hash.Checksum(stored)

	// stored may alias the encoder's pooled buffer, so copy before Finish.
	out := make([]byte, section.HeaderSize+len(stored))
	copy(out, header.Bytes())
	copy(out[section.PayloadOffset:], stored)

	return out, nil
}

// EncodeTo writes the segment blob of snap to w and returns the number of bytes written.
func EncodeTo(w io.Writer, snap *snapshot.Snapshot, opts ...EncoderOption) (int64, error) {
	blob, err := Encode(snap, opts...)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(blob)

	return int64(n), err
}

func newUnitEncoder(enc format.EncodingType, engine endian.EndianEngine, unitSize int) encoding.ColumnarEncoder[uint64] {
	if enc == format.TypeRunLength {
		return encoding.NewUnitRunLengthEncoder(engine, unitSize)
	}

	return encoding.NewUnitRawEncoder(engine, unitSize)
}

func newUnitDecoder(enc format.EncodingType, engine endian.EndianEngine, unitSize int) encoding.ColumnarDecoder[uint64] {
	if enc == format.TypeRunLength {
		return encoding.NewUnitRunLengthDecoder(engine, unitSize)
	}

	return encoding.NewUnitRawDecoder(engine, unitSize)
}
