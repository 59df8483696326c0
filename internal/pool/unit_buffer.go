package pool

import "math"

// Growth policy for UnitBuffer, in units.
const (
	// UnitBufferMinCapacity is the smallest capacity a growing buffer jumps to.
	UnitBufferMinCapacity = 1024
	// unitGrowthThreshold switches growth from 2x to 1.25x.
	unitGrowthThreshold = 1 << 20
)

// UnitBuffer is a contiguous byte buffer holding fixed-width units.
//
// Capacity only grows. Growing allocates a new backing array and copies the
// stored units before switching over, so a failed allocation never leaves a
// half-copied buffer behind.
//
// UnitBuffer does no locking; the owner serializes access.
type UnitBuffer struct {
	data     []byte // len(data) == capacity*unitSize
	unitSize int
	count    int
}

// NewUnitBuffer creates an empty buffer for units of unitSize bytes with room
// for capacity units.
//
// Panics if unitSize is not positive, or capacity is negative or its byte
// size overflows int.
func NewUnitBuffer(unitSize, capacity int) *UnitBuffer {
	if unitSize <= 0 {
		panic("UnitBuffer: unit size must be positive")
	}
	if capacity < 0 {
		panic("UnitBuffer: negative capacity")
	}
	if capacity > math.MaxInt/unitSize {
		panic("UnitBuffer: capacity overflows int")
	}

	return &UnitBuffer{
		data:     make([]byte, capacity*unitSize),
		unitSize: unitSize,
	}
}

// UnitSize returns the width of one unit in bytes.
func (ub *UnitBuffer) UnitSize() int {
	return ub.unitSize
}

// Len returns the number of units stored.
func (ub *UnitBuffer) Len() int {
	return ub.count
}

// Cap returns the number of units the buffer can hold without growing.
func (ub *UnitBuffer) Cap() int {
	return len(ub.data) / ub.unitSize
}

// MaxLen returns the largest number of units whose byte size fits in an int.
func (ub *UnitBuffer) MaxLen() int {
	return math.MaxInt / ub.unitSize
}

// Reserve grows the buffer so that it can hold at least capacity units.
// It reports whether a reallocation happened.
//
// Panics if capacity exceeds MaxLen.
func (ub *UnitBuffer) Reserve(capacity int) bool {
	if capacity <= ub.Cap() {
		return false
	}
	if capacity > ub.MaxLen() {
		panic("UnitBuffer: capacity overflows int")
	}

	grown := make([]byte, capacity*ub.unitSize)
	copy(grown, ub.data[:ub.count*ub.unitSize])
	ub.data = grown

	return true
}

// Grow ensures room for extra more units, growing geometrically so that a
// long run of small appends costs amortized O(1) per unit.
// It reports whether a reallocation happened.
//
// Panics if Len()+extra exceeds MaxLen.
func (ub *UnitBuffer) Grow(extra int) bool {
	if extra > ub.MaxLen()-ub.count {
		panic("UnitBuffer: capacity overflows int")
	}

	needed := ub.count + extra
	capacity := ub.Cap()
	if needed <= capacity {
		return false
	}

	return ub.Reserve(max(needed, min(NextCapacity(capacity), ub.MaxLen())))
}

// NextCapacity returns the capacity a buffer of the given capacity grows to:
// doubling below one million units, 25% above, never less than
// UnitBufferMinCapacity.
func NextCapacity(capacity int) int {
	switch {
	case capacity < UnitBufferMinCapacity:
		return UnitBufferMinCapacity
	case capacity < unitGrowthThreshold:
		return capacity * 2
	default:
		return capacity + capacity/4
	}
}

// Append copies count units from src to the end of the buffer.
//
// The caller must have reserved room for them. Panics if src is shorter than
// count units or the capacity is insufficient.
func (ub *UnitBuffer) Append(src []byte, count int) {
	if count < 0 || count > ub.Cap()-ub.count {
		panic("UnitBuffer: append beyond reserved capacity")
	}
	n := count * ub.unitSize
	if len(src) < n {
		panic("UnitBuffer: source shorter than count units")
	}

	off := ub.count * ub.unitSize
	copy(ub.data[off:off+n], src[:n])
	ub.count += count
}

// At returns the bytes of unit i. The slice aliases the buffer and is only
// valid until the next Reserve or Grow.
//
// Panics if i is outside [0, Len()).
func (ub *UnitBuffer) At(i int) []byte {
	if i < 0 || i >= ub.count {
		panic("UnitBuffer: index out of range")
	}
	off := i * ub.unitSize

	return ub.data[off : off+ub.unitSize : off+ub.unitSize]
}

// Bytes returns the stored units. The slice aliases the buffer and is only
// valid until the next Reserve or Grow.
func (ub *UnitBuffer) Bytes() []byte {
	return ub.data[:ub.count*ub.unitSize]
}

// Slice returns the bytes of units [start, end). The slice aliases the buffer.
//
// Panics if the range is not within [0, Len()].
func (ub *UnitBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > ub.count {
		panic("UnitBuffer: invalid slice range")
	}

	return ub.data[start*ub.unitSize : end*ub.unitSize]
}
