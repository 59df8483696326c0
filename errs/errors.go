// Package errs defines the sentinel errors returned by logicstore packages.
//
// Callers match them with errors.Is; packages wrap them with additional
// context using fmt.Errorf("...: %w", err).
package errs

import "errors"

// Snapshot construction and ingest errors.
var (
	// ErrInvalidUnitSize indicates a unit size outside 1..8 bytes.
	ErrInvalidUnitSize = errors.New("invalid unit size")
	// ErrInvalidScalePower indicates a mip-map scale power outside the supported range.
	ErrInvalidScalePower = errors.New("invalid mip-map scale power")
	// ErrInvalidLevelCount indicates a mip-map level count outside the supported range.
	ErrInvalidLevelCount = errors.New("invalid mip-map level count")
	// ErrPayloadSize indicates an appended payload shorter than count*unitSize bytes.
	ErrPayloadSize = errors.New("payload size does not match sample count")
	// ErrCapacityExceeded indicates an append would grow the store beyond its configured limit.
	ErrCapacityExceeded = errors.New("sample capacity exceeded")
)

// Query errors.
var (
	// ErrChannelOutOfRange indicates a channel index not covered by the unit width.
	ErrChannelOutOfRange = errors.New("channel index out of range")
	// ErrSampleOutOfRange indicates a sample index at or beyond the sample count.
	ErrSampleOutOfRange = errors.New("sample index out of range")
	// ErrInvalidRange indicates a query range whose start lies beyond the stored samples.
	ErrInvalidRange = errors.New("invalid sample range")
)

// Segment blob errors.
var (
	// ErrInvalidHeaderSize indicates the data is shorter than a segment header.
	ErrInvalidHeaderSize = errors.New("invalid segment header size")
	// ErrInvalidMagic indicates the data does not start with a segment magic number.
	ErrInvalidMagic = errors.New("invalid segment magic number")
	// ErrInvalidEncoding indicates an unknown payload encoding type.
	ErrInvalidEncoding = errors.New("invalid payload encoding")
	// ErrInvalidCompression indicates an unknown payload compression type.
	ErrInvalidCompression = errors.New("invalid payload compression")
	// ErrTruncatedPayload indicates the payload is shorter than the header declares.
	ErrTruncatedPayload = errors.New("truncated segment payload")
	// ErrChecksumMismatch indicates the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("segment payload checksum mismatch")
	// ErrCorruptPayload indicates the decoded payload does not describe the declared samples.
	ErrCorruptPayload = errors.New("corrupt segment payload")
)
