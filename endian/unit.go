package endian

// Unit decodes a packed sample unit of len(b) bytes (1..8) into a uint64.
//
// Panics if b is empty or longer than 8 bytes.
func Unit(engine EndianEngine, b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(engine.Uint16(b))
	case 4:
		return uint64(engine.Uint32(b))
	case 8:
		return engine.Uint64(b)
	}

	if len(b) == 0 || len(b) > 8 {
		panic("endian: invalid unit width")
	}

	// Odd widths (3, 5, 6, 7 bytes).
	var v uint64
	if IsLittleEndian(engine) {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
	} else {
		for i := range b {
			v = v<<8 | uint64(b[i])
		}
	}

	return v
}

// PutUnit encodes the low len(b)*8 bits of v into b.
//
// Panics if b is empty or longer than 8 bytes.
func PutUnit(engine EndianEngine, b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
		return
	case 2:
		engine.PutUint16(b, uint16(v)) //nolint:gosec
		return
	case 4:
		engine.PutUint32(b, uint32(v)) //nolint:gosec
		return
	case 8:
		engine.PutUint64(b, v)
		return
	}

	if len(b) == 0 || len(b) > 8 {
		panic("endian: invalid unit width")
	}

	if IsLittleEndian(engine) {
		for i := range b {
			b[i] = byte(v >> (8 * i))
		}
	} else {
		n := len(b)
		for i := range b {
			b[i] = byte(v >> (8 * (n - 1 - i)))
		}
	}
}
