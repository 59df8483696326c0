package encoding

import "iter"

// ColumnarEncoder encodes a stream of sample units into a payload.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, WritePacked or Reset.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded units.
	Len() int

	// Size returns the size in bytes of the encoded payload.
	Size() int

	// Reset clears the internal encoder state but keeps the accumulated data in the internal buffer.
	//
	// Len(), Size() and Bytes() keep reporting the accumulated payload.
	Reset()

	// Finish returns buffer resources to the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
	// Write(), WriteSlice(), WritePacked(), Bytes() or Size() panic due to nil buffer.
	//
	//	encoder := NewUnitRawEncoder(engine, unitSize)
	//	defer encoder.Finish()
	Finish()

	// Write encodes a single unit.
	Write(unit T)

	// WriteSlice encodes a slice of units.
	WriteSlice(units []T)

	// WritePacked encodes units that are already packed unitSize bytes each
	// in the encoder's byte order.
	//
	// Panics if len(data) is not a multiple of the unit size.
	WritePacked(data []byte)
}

// ColumnarDecoder decodes payloads produced by the matching ColumnarEncoder.
type ColumnarDecoder[T comparable] interface {
	// All returns an iterator over the decoded units.
	//
	// If the data is malformed or holds fewer than count units, the iterator
	// yields fewer values. Use DecodePacked for a checked decode.
	All(data []byte, count int) iter.Seq[T]

	// At retrieves the unit at index, or false if index is out of bounds.
	At(data []byte, index int, count int) (T, bool)

	// DecodePacked expands the payload into count packed units appended to dst.
	//
	// It returns errs.ErrCorruptPayload if data does not describe exactly count units.
	DecodePacked(dst []byte, data []byte, count int) ([]byte, error)
}
