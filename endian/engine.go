// Package endian provides byte order utilities for packed sample units.
//
// A sample unit is 1 to 8 bytes wide. Bit i of the unit value is the level of
// channel i, so the byte order decides which byte holds which channel group.
// Capture hardware almost always delivers little-endian units; big-endian is
// supported for interoperability with file formats that store them that way.
//
//	engine := endian.GetLittleEndianEngine()
//	v := endian.Unit(engine, raw[i*unitSize:(i+1)*unitSize])
//	high := v&(1<<channel) != 0
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine is the little-endian engine.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}
