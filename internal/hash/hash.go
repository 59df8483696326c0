// Package hash wraps xxHash64 for segment and capture checksums.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of a segment payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates a checksum over payload chunks written in sequence.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty streaming digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the running checksum. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the checksum of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
