// Package logicstore keeps captured multi-channel logic samples in a
// multi-resolution snapshot and answers edge queries at any zoom level.
//
// Samples arrive as packed units of 1, 2, 4 or 8 bytes, bit i of a unit
// holding channel i. Every append extends a stack of mip-map levels that
// summarize where transitions happen, so an edge query over millions of
// samples only touches the blocks that actually contain activity.
//
// # Basic Usage
//
// Appending samples and querying edges:
//
//	snap, _ := logicstore.NewSnapshot(1)
//	_ = snap.Append([]byte{0x00, 0x01, 0x01, 0x00}, 4)
//
//	edges, _ := snap.Edges(0, snap.SampleCount(), 1, 0)
//	for _, e := range edges {
//	    fmt.Println(e.Index, e.Rising)
//	}
//
// Persisting a snapshot as a segment blob and loading it back:
//
//	blob, _ := logicstore.EncodeSegment(snap)
//	restored, _ := logicstore.DecodeSegment(blob)
//
// # Package Structure
//
// This package wraps the snapshot and segment packages for the common cases.
// Use those packages directly for fine-grained control over mip-map geometry,
// payload encoding and compression.
package logicstore

import (
	"github.com/sigrokproject/logicstore/format"
	"github.com/sigrokproject/logicstore/segment"
	"github.com/sigrokproject/logicstore/snapshot"
)

type (
	// Snapshot is a multi-resolution sample store. See snapshot.Snapshot.
	Snapshot = snapshot.Snapshot
	// Edge is a single channel transition.
	Edge = snapshot.Edge
	// Span is a half-open sample range.
	Span = snapshot.Span
	// EdgeSet is a merged set of edge positions across channels.
	EdgeSet = snapshot.EdgeSet
)

var defaultSegmentOptions = []segment.EncoderOption{
	segment.WithEncoding(format.TypeRunLength),
	segment.WithCompression(format.CompressionZstd),
}

// NewSnapshot creates an empty snapshot for units of unitSize bytes.
//
// Without options the snapshot uses a scale factor of 16 and 10 mip-map
// levels, little-endian units and no sample cap.
//
// Example:
//
//	snap, err := logicstore.NewSnapshot(2,
//	    snapshot.WithGeometry(3, 12),
//	    snapshot.WithMaxSamples(1<<30),
//	)
func NewSnapshot(unitSize int, opts ...snapshot.Option) (*Snapshot, error) {
	return snapshot.New(unitSize, opts...)
}

// EncodeSegment serializes snap with run-length encoding and zstd compression.
// Use EncodeSegmentWith to choose other settings.
func EncodeSegment(snap *Snapshot) ([]byte, error) {
	return segment.Encode(snap, defaultSegmentOptions...)
}

// EncodeSegmentWith serializes snap with the given encoder options, applied
// after the defaults used by EncodeSegment.
func EncodeSegmentWith(snap *Snapshot, opts ...segment.EncoderOption) ([]byte, error) {
	return segment.Encode(snap, append(defaultSegmentOptions[:len(defaultSegmentOptions):len(defaultSegmentOptions)], opts...)...)
}

// DecodeSegment verifies a segment blob and replays it into a new snapshot.
// The snapshot keeps the geometry and byte order recorded in the segment
// unless opts override them.
func DecodeSegment(data []byte, opts ...snapshot.Option) (*Snapshot, error) {
	return segment.Decode(data, opts...)
}
