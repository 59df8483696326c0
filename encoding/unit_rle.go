package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/internal/pool"
)

// UnitRunLengthEncoder stores each run of identical units as a uvarint run
// length followed by the unit bytes.
//
// The current run is kept pending until a different unit arrives or the
// payload is read through Bytes, Size or Reset.
type UnitRunLengthEncoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	unitSize int
	count    int

	cur     []byte // bytes of the pending run's unit
	scratch []byte
	run     uint64
}

var _ ColumnarEncoder[uint64] = (*UnitRunLengthEncoder)(nil)

// NewUnitRunLengthEncoder creates a run-length unit encoder for units of
// unitSize bytes written in the byte order of engine.
//
// Panics if unitSize is outside 1..8.
func NewUnitRunLengthEncoder(engine endian.EndianEngine, unitSize int) *UnitRunLengthEncoder {
	checkUnitSize(unitSize)

	return &UnitRunLengthEncoder{
		buf:      pool.GetSegmentBuffer(),
		engine:   engine,
		unitSize: unitSize,
		cur:      make([]byte, unitSize),
		scratch:  make([]byte, unitSize),
	}
}

// Write encodes a single unit. Bits above the unit width are dropped.
func (e *UnitRunLengthEncoder) Write(unit uint64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	endian.PutUnit(e.engine, e.scratch, unit)
	e.writeUnit(e.scratch)
}

// WriteSlice encodes a slice of units.
func (e *UnitRunLengthEncoder) WriteSlice(units []uint64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	for _, v := range units {
		endian.PutUnit(e.engine, e.scratch, v)
		e.writeUnit(e.scratch)
	}
}

// WritePacked encodes already packed units, comparing their bytes directly.
func (e *UnitRunLengthEncoder) WritePacked(data []byte) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(data)%e.unitSize != 0 {
		panic(fmt.Sprintf("packed data length %d is not a multiple of unit size %d", len(data), e.unitSize))
	}

	for off := 0; off < len(data); off += e.unitSize {
		e.writeUnit(data[off : off+e.unitSize])
	}
}

func (e *UnitRunLengthEncoder) writeUnit(unit []byte) {
	e.count++
	if e.run > 0 && bytes.Equal(unit, e.cur) {
		e.run++
		return
	}

	e.flush()
	copy(e.cur, unit)
	e.run = 1
}

// flush writes the pending run to the buffer.
func (e *UnitRunLengthEncoder) flush() {
	if e.run == 0 {
		return
	}

	e.buf.Grow(binary.MaxVarintLen64 + e.unitSize)
	e.buf.B = binary.AppendUvarint(e.buf.B, e.run)
	e.buf.B = append(e.buf.B, e.cur...)
	e.run = 0
}

// Bytes flushes the pending run and returns the encoded payload.
//
// Panics if Finish() has been called.
func (e *UnitRunLengthEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}
	e.flush()

	return e.buf.Bytes()
}

// Len returns the number of encoded units.
func (e *UnitRunLengthEncoder) Len() int {
	return e.count
}

// Size flushes the pending run and returns the payload size in bytes.
//
// Panics if Finish() has been called.
func (e *UnitRunLengthEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}
	e.flush()

	return e.buf.Len()
}

// Reset ends the pending run. The next unit starts a new run even if it
// equals the previous one.
func (e *UnitRunLengthEncoder) Reset() {
	if e.buf != nil {
		e.flush()
	}
}

// Finish returns the payload buffer to the pool.
func (e *UnitRunLengthEncoder) Finish() {
	if e.buf != nil {
		pool.PutSegmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
	e.run = 0
}

// UnitRunLengthDecoder decodes payloads produced by UnitRunLengthEncoder.
type UnitRunLengthDecoder struct {
	engine   endian.EndianEngine
	unitSize int
}

var _ ColumnarDecoder[uint64] = UnitRunLengthDecoder{}

// NewUnitRunLengthDecoder creates a run-length unit decoder. The decoder is
// stateless and returned by value.
//
// Panics if unitSize is outside 1..8.
func NewUnitRunLengthDecoder(engine endian.EndianEngine, unitSize int) UnitRunLengthDecoder {
	checkUnitSize(unitSize)

	return UnitRunLengthDecoder{engine: engine, unitSize: unitSize}
}

// runs yields (run length, unit bytes) pairs until data is exhausted or malformed.
func (d UnitRunLengthDecoder) runs(data []byte) iter.Seq2[uint64, []byte] {
	return func(yield func(uint64, []byte) bool) {
		for len(data) > 0 {
			run, n := binary.Uvarint(data)
			if n <= 0 || run == 0 || len(data)-n < d.unitSize {
				return
			}
			unit := data[n : n+d.unitSize]
			data = data[n+d.unitSize:]
			if !yield(run, unit) {
				return
			}
		}
	}
}

// All yields up to count decoded units.
func (d UnitRunLengthDecoder) All(data []byte, count int) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		remaining := uint64(max(count, 0)) //nolint:gosec
		for run, unit := range d.runs(data) {
			v := endian.Unit(d.engine, unit)
			for ; run > 0 && remaining > 0; run-- {
				if !yield(v) {
					return
				}
				remaining--
			}
			if remaining == 0 {
				return
			}
		}
	}
}

// At returns the unit at index by walking the runs.
func (d UnitRunLengthDecoder) At(data []byte, index int, count int) (uint64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	pos := uint64(index)
	for run, unit := range d.runs(data) {
		if pos < run {
			return endian.Unit(d.engine, unit), true
		}
		pos -= run
	}

	return 0, false
}

// DecodePacked expands the runs of data into count packed units appended to dst.
func (d UnitRunLengthDecoder) DecodePacked(dst []byte, data []byte, count int) ([]byte, error) {
	if count < 0 {
		return dst, fmt.Errorf("%w: negative unit count %d", errs.ErrCorruptPayload, count)
	}

	want := uint64(count)
	var total uint64

	for len(data) > 0 {
		run, n := binary.Uvarint(data)
		if n <= 0 || run == 0 {
			return dst, fmt.Errorf("%w: invalid run length", errs.ErrCorruptPayload)
		}
		if len(data)-n < d.unitSize {
			return dst, fmt.Errorf("%w: run unit truncated", errs.ErrCorruptPayload)
		}
		if run > want-total {
			return dst, fmt.Errorf("%w: runs exceed %d units", errs.ErrCorruptPayload, count)
		}

		unit := data[n : n+d.unitSize]
		for range run {
			dst = append(dst, unit...)
		}
		total += run
		data = data[n+d.unitSize:]
	}

	if total != want {
		return dst, fmt.Errorf("%w: runs hold %d units, want %d", errs.ErrCorruptPayload, total, count)
	}

	return dst, nil
}
