package snapshot

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/sigrokproject/logicstore/endian"
	"github.com/sigrokproject/logicstore/errs"
	"github.com/sigrokproject/logicstore/internal/options"
	"github.com/sigrokproject/logicstore/internal/pool"
)

// MaxUnitSize is the widest supported sample unit in bytes (64 channels).
const MaxUnitSize = 8

// RawLevel addresses the raw sample buffer in Subsample.
const RawLevel = -1

// Snapshot is an append-only store of packed logic samples with a mip-map
// for fast edge queries. See the package documentation for the layout.
type Snapshot struct {
	mu sync.RWMutex

	unitSize    int
	scalePower  int
	scaleFactor int
	maxSamples  int
	engine      endian.EndianEngine
	logger      *slog.Logger
	observer    Observer

	raw    *pool.UnitBuffer
	levels []*pool.UnitBuffer
}

// New creates an empty snapshot for units of unitSize bytes (1..MaxUnitSize).
//
// Returns errs.ErrInvalidUnitSize for an unsupported width, or the error of
// the first rejected option.
func New(unitSize int, opts ...Option) (*Snapshot, error) {
	if unitSize < 1 || unitSize > MaxUnitSize {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidUnitSize, unitSize)
	}

	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.initialCapacity > math.MaxInt/unitSize {
		return nil, fmt.Errorf("%w: initial capacity of %d samples", errs.ErrCapacityExceeded, cfg.initialCapacity)
	}

	s := &Snapshot{
		unitSize:    unitSize,
		scalePower:  cfg.scalePower,
		scaleFactor: 1 << cfg.scalePower,
		maxSamples:  cfg.maxSamples,
		engine:      cfg.engine,
		logger:      cfg.logger,
		observer:    cfg.observer,
		raw:         pool.NewUnitBuffer(unitSize, cfg.initialCapacity),
		levels:      make([]*pool.UnitBuffer, cfg.levelCount),
	}
	for l := range s.levels {
		s.levels[l] = pool.NewUnitBuffer(unitSize, cfg.initialCapacity>>(s.scalePower*(l+1)))
	}

	return s, nil
}

// UnitSize returns the width of one sample unit in bytes.
func (s *Snapshot) UnitSize() int {
	return s.unitSize
}

// ChannelCount returns the number of channels a unit can hold.
func (s *Snapshot) ChannelCount() int {
	return s.unitSize * 8
}

// ScaleFactor returns the number of units each mip-map unit summarizes.
func (s *Snapshot) ScaleFactor() int {
	return s.scaleFactor
}

// ScalePower returns log2 of ScaleFactor.
func (s *Snapshot) ScalePower() int {
	return s.scalePower
}

// IsBigEndian reports whether multi-byte units are decoded as big-endian.
func (s *Snapshot) IsBigEndian() bool {
	return !endian.IsLittleEndian(s.engine)
}

// LevelCount returns the number of mip-map levels.
func (s *Snapshot) LevelCount() int {
	return len(s.levels)
}

// SampleCount returns the number of samples appended so far.
func (s *Snapshot) SampleCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(s.raw.Len())
}

// Append adds count packed units from data to the end of the snapshot and
// extends the mip-map to cover them.
//
// data must hold at least count*UnitSize() bytes; extra bytes are ignored.
// Appending zero units is a no-op. On error nothing is modified.
func (s *Snapshot) Append(data []byte, count int) error {
	if count < 0 || count > math.MaxInt/s.unitSize || len(data) < count*s.unitSize {
		return fmt.Errorf("%w: %d bytes for %d units of %d bytes",
			errs.ErrPayloadSize, len(data), count, s.unitSize)
	}
	if count == 0 {
		return nil
	}

	start := time.Now()

	s.mu.Lock()
	if count > s.raw.MaxLen()-s.raw.Len() {
		have := s.raw.Len()
		s.mu.Unlock()

		return fmt.Errorf("%w: %d + %d samples overflows the buffer size",
			errs.ErrCapacityExceeded, have, count)
	}
	if s.maxSamples > 0 && s.raw.Len()+count > s.maxSamples {
		have := s.raw.Len()
		s.mu.Unlock()

		return fmt.Errorf("%w: %d + %d samples exceeds limit of %d",
			errs.ErrCapacityExceeded, have, count, s.maxSamples)
	}

	if s.raw.Grow(count) {
		s.logger.Debug("raw sample buffer grown",
			slog.Int("capacity", s.raw.Cap()),
			slog.Int("samples", s.raw.Len()+count),
			slog.Int("unit_size", s.unitSize))
	}
	s.raw.Append(data, count)
	s.extendMipMapLocked()
	s.mu.Unlock()

	s.observer.ObserveAppend(count, time.Since(start))

	return nil
}

// Sample returns the raw unit at index as an integer, bit i being channel i.
//
// Returns errs.ErrSampleOutOfRange if index >= SampleCount().
func (s *Snapshot) Sample(index uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index >= uint64(s.raw.Len()) {
		return 0, fmt.Errorf("%w: %d >= %d", errs.ErrSampleOutOfRange, index, s.raw.Len())
	}

	return s.rawUnitLocked(int(index)), nil //nolint:gosec
}

// StateAt returns the level of channel at sample index.
func (s *Snapshot) StateAt(index uint64, channel int) (bool, error) {
	if err := s.checkChannel(channel); err != nil {
		return false, err
	}

	v, err := s.Sample(index)
	if err != nil {
		return false, err
	}

	return v&(1<<channel) != 0, nil
}

// Bytes returns a copy of the packed units in [start, end).
// end is clamped to SampleCount().
func (s *Snapshot) Bytes(start, end uint64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := uint64(s.raw.Len())
	end = min(end, n)
	if start > n {
		return nil, fmt.Errorf("%w: start %d beyond %d samples", errs.ErrInvalidRange, start, n)
	}
	if start >= end {
		return []byte{}, nil
	}

	src := s.raw.Slice(int(start), int(end)) //nolint:gosec
	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}

// Subsample returns the unit at offset of the given mip-map level, or the raw
// unit when level is RawLevel.
//
// Panics if level is outside [RawLevel, LevelCount()) or offset is not below
// the level's current length; callers bound-check against Levels().
func (s *Snapshot) Subsample(level int, offset uint64) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf := s.levelBufferLocked(level)
	if offset >= uint64(buf.Len()) {
		panic(fmt.Sprintf("snapshot: offset %d beyond level %d length %d", offset, level, buf.Len()))
	}

	return endian.Unit(s.engine, buf.At(int(offset))) //nolint:gosec
}

// Pow2Ceil rounds x up to the next multiple of ScaleFactor()^power.
func (s *Snapshot) Pow2Ceil(x uint64, power int) uint64 {
	return pow2Ceil(x, uint(s.scalePower*power)) //nolint:gosec
}

func pow2Ceil(x uint64, shift uint) uint64 {
	mask := uint64(1)<<shift - 1
	return (x + mask) &^ mask
}

func (s *Snapshot) checkChannel(channel int) error {
	if channel < 0 || channel >= s.unitSize*8 {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrChannelOutOfRange, channel, s.unitSize*8)
	}

	return nil
}

// levelBufferLocked returns the buffer backing level, RawLevel included.
func (s *Snapshot) levelBufferLocked(level int) *pool.UnitBuffer {
	if level == RawLevel {
		return s.raw
	}
	if level < 0 || level >= len(s.levels) {
		panic(fmt.Sprintf("snapshot: mip-map level %d out of range [-1, %d)", level, len(s.levels)))
	}

	return s.levels[level]
}

func (s *Snapshot) rawUnitLocked(i int) uint64 {
	if s.unitSize == 1 {
		return uint64(s.raw.At(i)[0])
	}

	return endian.Unit(s.engine, s.raw.At(i))
}

func (s *Snapshot) levelUnitLocked(level, i int) uint64 {
	b := s.levels[level].At(i)
	if s.unitSize == 1 {
		return uint64(b[0])
	}

	return endian.Unit(s.engine, b)
}
