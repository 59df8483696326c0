// Package encoding provides the payload encodings of the segment blob format.
//
// A segment payload holds the raw sample units of a snapshot. Two encodings
// are available, selected per segment with format.EncodingType:
//
//   - TypeRaw: units are stored packed, unitSize bytes each, in the byte order
//     of the segment. Random access is O(1).
//   - TypeRunLength: each run of identical units is stored as a uvarint run
//     length followed by the unit bytes. Logic captures are dominated by long
//     idle stretches, so a run costs 2-10 bytes regardless of its length.
//     Random access is O(runs).
//
// # Architecture
//
// Both encodings implement the ColumnarEncoder and ColumnarDecoder interfaces
// over uint64 unit values:
//
//	type ColumnarEncoder[T comparable] interface {
//	    Write(unit T)             // Encode a single unit
//	    WriteSlice(units []T)     // Encode multiple units
//	    WritePacked(data []byte)  // Encode units already packed in the payload byte order
//	    Bytes() []byte            // Get encoded data
//	    Len() int                 // Number of units encoded
//	    Size() int                // Size in bytes
//	    Reset()                   // Clear state but keep buffer
//	    Finish()                  // Release resources
//	}
//
//	type ColumnarDecoder[T comparable] interface {
//	    All(data []byte, count int) iter.Seq[T]
//	    At(data []byte, index int, count int) (T, bool)
//	    DecodePacked(dst, data []byte, count int) ([]byte, error)
//	}
//
// # Usage
//
//	enc := encoding.NewUnitRunLengthEncoder(endian.GetLittleEndianEngine(), 2)
//	defer enc.Finish()
//
//	enc.WritePacked(raw) // raw holds len(raw)/2 packed units
//	payload := enc.Bytes()
//
//	dec := encoding.NewUnitRunLengthDecoder(endian.GetLittleEndianEngine(), 2)
//	units, err := dec.DecodePacked(nil, payload, len(raw)/2)
//
// # Memory Usage
//
// Encoders borrow their output buffer from the segment buffer pool in
// internal/pool and return it on Finish. Decoders are stateless values.
//
// # Thread Safety
//
// Encoders: Not thread-safe. Use one encoder per goroutine.
//
// Decoders: Safe for concurrent use.
package encoding
