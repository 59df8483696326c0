package segment

import (
	"fmt"

	"github.com/sigrokproject/logicstore/compress"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/format"
	"github.com/sigrokproject/logicstore/internal/options"
)

// DefaultBatchUnits is the number of units copied out of the snapshot per
// read lock while encoding.
const DefaultBatchUnits = 1 << 16

// EncoderConfig holds the segment encoder settings.
type EncoderConfig struct {
	encoding    format.EncodingType
	compression format.CompressionType
	batchUnits  int
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		encoding:    format.TypeRunLength,
		compression: format.CompressionZstd,
		batchUnits:  DefaultBatchUnits,
	}
}

// Encoding returns the configured payload encoding.
func (c *EncoderConfig) Encoding() format.EncodingType {
	return c.encoding
}

// Compression returns the configured payload compression.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.compression
}

func (c *EncoderConfig) codec() (compress.Codec, error) {
	return compress.CreateCodec(c.compression, "segment payload")
}

// EncoderOption configures Encode.
//
// This is a type alias for the generic Option interface specialized for EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithEncoding sets the payload encoding. The default is format.TypeRunLength.
func WithEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !enc.IsValid() {
			return fmt.Errorf("%w: 0x%02X", errs.ErrInvalidEncoding, uint8(enc))
		}
		c.encoding = enc

		return nil
	})
}

// WithCompression sets the payload compression. The default is format.CompressionZstd.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: 0x%02X", errs.ErrInvalidCompression, uint8(comp))
		}
		c.compression = comp

		return nil
	})
}

// WithBatchUnits sets how many units are copied from the snapshot per read lock.
func WithBatchUnits(units int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if units < 1 {
			return fmt.Errorf("batch units must be positive: %d", units)
		}
		c.batchUnits = units

		return nil
	})
}
