package encoding

import (
	"fmt"
	"iter"

	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/internal/pool"
)

// UnitRawEncoder stores sample units packed, unitSize bytes each.
type UnitRawEncoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	unitSize int
	count    int
}

var _ ColumnarEncoder[uint64] = (*UnitRawEncoder)(nil)

// NewUnitRawEncoder creates a raw unit encoder for units of unitSize bytes
// written in the byte order of engine.
//
// Panics if unitSize is outside 1..8.
func NewUnitRawEncoder(engine endian.EndianEngine, unitSize int) *UnitRawEncoder {
	checkUnitSize(unitSize)

	return &UnitRawEncoder{
		buf:      pool.GetSegmentBuffer(),
		engine:   engine,
		unitSize: unitSize,
	}
}

// Write encodes a single unit. Bits above the unit width are dropped.
func (e *UnitRawEncoder) Write(unit uint64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(e.unitSize)
	n := e.buf.Len()
	e.buf.B = e.buf.B[:n+e.unitSize]
	endian.PutUnit(e.engine, e.buf.B[n:], unit)
	e.count++
}

// WriteSlice encodes a slice of units with a single buffer growth.
func (e *UnitRawEncoder) WriteSlice(units []uint64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(units) == 0 {
		return
	}

	e.buf.Grow(len(units) * e.unitSize)
	n := e.buf.Len()
	e.buf.B = e.buf.B[:n+len(units)*e.unitSize]
	for i, v := range units {
		off := n + i*e.unitSize
		endian.PutUnit(e.engine, e.buf.B[off:off+e.unitSize], v)
	}
	e.count += len(units)
}

// WritePacked copies already packed units into the payload.
func (e *UnitRawEncoder) WritePacked(data []byte) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(data)%e.unitSize != 0 {
		panic(fmt.Sprintf("packed data length %d is not a multiple of unit size %d", len(data), e.unitSize))
	}

	e.buf.MustWrite(data)
	e.count += len(data) / e.unitSize
}

// Bytes returns the encoded payload.
//
// Panics if Finish() has been called.
func (e *UnitRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded units.
func (e *UnitRawEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
//
// Panics if Finish() has been called.
func (e *UnitRawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset is a no-op: the raw encoding carries no state between units.
func (e *UnitRawEncoder) Reset() {}

// Finish returns the payload buffer to the pool.
func (e *UnitRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutSegmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// UnitRawDecoder decodes payloads produced by UnitRawEncoder.
type UnitRawDecoder struct {
	engine   endian.EndianEngine
	unitSize int
}

var _ ColumnarDecoder[uint64] = UnitRawDecoder{}

// NewUnitRawDecoder creates a raw unit decoder. The decoder is stateless and
// returned by value.
//
// Panics if unitSize is outside 1..8.
func NewUnitRawDecoder(engine endian.EndianEngine, unitSize int) UnitRawDecoder {
	checkUnitSize(unitSize)

	return UnitRawDecoder{engine: engine, unitSize: unitSize}
}

// All yields count units, or nothing if data is shorter than count units.
func (d UnitRawDecoder) All(data []byte, count int) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		if count <= 0 || len(data) < count*d.unitSize {
			return
		}

		for i := range count {
			off := i * d.unitSize
			if !yield(endian.Unit(d.engine, data[off:off+d.unitSize])) {
				return
			}
		}
	}
}

// At returns the unit at index.
func (d UnitRawDecoder) At(data []byte, index int, count int) (uint64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	off := index * d.unitSize
	if off+d.unitSize > len(data) {
		return 0, false
	}

	return endian.Unit(d.engine, data[off:off+d.unitSize]), true
}

// DecodePacked appends the count packed units of data to dst.
func (d UnitRawDecoder) DecodePacked(dst []byte, data []byte, count int) ([]byte, error) {
	if count < 0 || len(data)%d.unitSize != 0 || len(data)/d.unitSize != count {
		return dst, fmt.Errorf("%w: raw payload is %d bytes, want %d units of %d bytes",
			errs.ErrCorruptPayload, len(data), count, d.unitSize)
	}

	return append(dst, data...), nil
}

func checkUnitSize(unitSize int) {
	if unitSize < 1 || unitSize > 8 {
		panic(fmt.Sprintf("invalid unit size %d", unitSize))
	}
}
