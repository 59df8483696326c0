// Package segment serializes the raw samples of a snapshot into a
// self-describing segment blob and rebuilds snapshots from such blobs.
//
// A segment is a 32-byte section.SegmentHeader followed by the payload:
// the snapshot's units encoded with a format.EncodingType and then
// compressed with a format.CompressionType. The header records the unit
// width, byte order, mip-map geometry, sample count and an xxHash64 checksum
// of the stored payload.
//
// Only raw samples are stored. Decoding replays them through
// snapshot.Append, which rebuilds the mip-map.
//
//	blob, err := segment.Encode(snap,
//	    segment.WithEncoding(format.TypeRunLength),
//	    segment.WithCompression(format.CompressionZstd),
//	)
//	...
//	restored, err := segment.Decode(blob)
//
// Encoding takes a consistent prefix of the snapshot: samples appended while
// Encode runs are not included.
package segment
