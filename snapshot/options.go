package snapshot

import (
	"fmt"
	"log/slog"

	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/internal/options"
)

// Mip-map geometry defaults and limits.
const (
	// DefaultScalePower gives a scale factor of 16.
	DefaultScalePower = 4
	// DefaultLevelCount levels of factor 16 cover 16^10 samples per top unit.
	DefaultLevelCount = 10

	MaxScalePower = 8
	MaxLevelCount = 16
	// maxSpanShift bounds ScalePower*LevelCount so that spans fit in an int.
	maxSpanShift = 60
)

// config holds the construction parameters of a Snapshot.
type config struct {
	scalePower      int
	levelCount      int
	initialCapacity int
	maxSamples      int
	engine          endian.EndianEngine
	logger          *slog.Logger
	observer        Observer
}

func newConfig() *config {
	return &config{
		scalePower: DefaultScalePower,
		levelCount: DefaultLevelCount,
		engine:     endian.GetLittleEndianEngine(),
		logger:     slog.New(slog.DiscardHandler),
		observer:   nopObserver{},
	}
}

func (c *config) validate() error {
	if c.scalePower*c.levelCount > maxSpanShift {
		return fmt.Errorf("%w: scale power %d with %d levels overflows the sample index",
			errs.ErrInvalidLevelCount, c.scalePower, c.levelCount)
	}

	return nil
}

// Option configures a Snapshot at construction time.
type Option = options.Option[*config]

// WithScalePower sets log2 of the mip-map scale factor (1..MaxScalePower).
func WithScalePower(power int) Option {
	return options.New(func(c *config) error {
		if power < 1 || power > MaxScalePower {
			return fmt.Errorf("%w: %d", errs.ErrInvalidScalePower, power)
		}
		c.scalePower = power

		return nil
	})
}

// WithLevelCount sets the number of mip-map levels (1..MaxLevelCount).
func WithLevelCount(levels int) Option {
	return options.New(func(c *config) error {
		if levels < 1 || levels > MaxLevelCount {
			return fmt.Errorf("%w: %d", errs.ErrInvalidLevelCount, levels)
		}
		c.levelCount = levels

		return nil
	})
}

// WithGeometry sets both the scale power and the level count.
func WithGeometry(scalePower, levels int) Option {
	return options.Compose(WithScalePower(scalePower), WithLevelCount(levels))
}

// WithInitialCapacity pre-allocates room for the given number of samples.
func WithInitialCapacity(samples int) Option {
	return options.New(func(c *config) error {
		if samples < 0 {
			return fmt.Errorf("initial capacity must not be negative: %d", samples)
		}
		c.initialCapacity = samples

		return nil
	})
}

// WithMaxSamples caps the number of samples the snapshot accepts. Appends
// that would exceed it fail with errs.ErrCapacityExceeded. Zero means no cap.
func WithMaxSamples(samples int) Option {
	return options.New(func(c *config) error {
		if samples < 0 {
			return fmt.Errorf("max samples must not be negative: %d", samples)
		}
		c.maxSamples = samples

		return nil
	})
}

// WithLittleEndianUnits decodes multi-byte units as little-endian. It is the default.
func WithLittleEndianUnits() Option {
	return options.NoError(func(c *config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndianUnits decodes multi-byte units as big-endian.
func WithBigEndianUnits() Option {
	return options.NoError(func(c *config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLogger sets the logger used for buffer growth diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithObserver installs an observer notified after every append and query.
func WithObserver(o Observer) Option {
	return options.NoError(func(c *config) {
		if o != nil {
			c.observer = o
		}
	})
}
