package snapshot

import (
	"log/slog"

	"github.com/sigrokproject/logicstore/endian"
)

// LevelStats describes one mip-map level.
type LevelStats struct {
	// Level is the level index; RawLevel for the raw sample buffer.
	Level int
	// Length is the number of completed units stored at this level.
	Length int
	// Capacity is the number of units allocated at this level.
	Capacity int
	// Span is the number of raw samples one unit of this level covers.
	Span uint64
}

// Stats is a consistent view of a snapshot's buffers.
type Stats struct {
	UnitSize    int
	SampleCount uint64
	// Raw describes the raw sample buffer.
	Raw LevelStats
	// Levels describes mip-map levels 0..LevelCount()-1.
	Levels []LevelStats
	// AllocatedBytes totals the raw and mip-map allocations.
	AllocatedBytes int
}

// Stats returns the current buffer lengths and capacities.
func (s *Snapshot) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		UnitSize:    s.unitSize,
		SampleCount: uint64(s.raw.Len()),
		Raw: LevelStats{
			Level:    RawLevel,
			Length:   s.raw.Len(),
			Capacity: s.raw.Cap(),
			Span:     1,
		},
		Levels: s.levelStatsLocked(),
	}

	st.AllocatedBytes = st.Raw.Capacity * s.unitSize
	for _, l := range st.Levels {
		st.AllocatedBytes += l.Capacity * s.unitSize
	}

	return st
}

// Levels returns the length and capacity of every mip-map level.
func (s *Snapshot) Levels() []LevelStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.levelStatsLocked()
}

func (s *Snapshot) levelStatsLocked() []LevelStats {
	out := make([]LevelStats, len(s.levels))
	for l, buf := range s.levels {
		out[l] = LevelStats{
			Level:    l,
			Length:   buf.Len(),
			Capacity: buf.Cap(),
			Span:     s.levelSpan(l),
		}
	}

	return out
}

// levelSpan returns the number of raw samples covered by one unit of level.
func (s *Snapshot) levelSpan(level int) uint64 {
	return uint64(1) << s.levelShift(level)
}

func (s *Snapshot) levelShift(level int) uint {
	return uint(s.scalePower * (level + 1)) //nolint:gosec
}

// extendMipMapLocked completes every mip-map unit made possible by the raw
// samples appended since the last call. The caller holds the write lock.
func (s *Snapshot) extendMipMapLocked() {
	if !s.extendLevelZeroLocked() {
		return
	}

	for l := 1; l < len(s.levels); l++ {
		if !s.extendLevelLocked(l) {
			return
		}
	}
}

// extendLevelZeroLocked folds complete runs of raw samples into level 0.
// A level 0 unit holds the OR of raw[k] XOR raw[k-1] over its span; the first
// sample of the capture has no predecessor and contributes nothing.
func (s *Snapshot) extendLevelZeroLocked() bool {
	dst := s.levels[0]
	target := s.raw.Len() >> s.scalePower
	if target <= dst.Len() {
		return false
	}

	s.growLevelLocked(0, target-dst.Len())

	var tmp [MaxUnitSize]byte
	unit := tmp[:s.unitSize]
	for o := dst.Len(); o < target; o++ {
		first := o * s.scaleFactor
		prev := s.rawUnitLocked(max(first-1, 0))

		var acc uint64
		for k := first; k < first+s.scaleFactor; k++ {
			v := s.rawUnitLocked(k)
			acc |= v ^ prev
			prev = v
		}

		endian.PutUnit(s.engine, unit, acc)
		dst.Append(unit, 1)
	}

	return true
}

// extendLevelLocked folds complete runs of level-1 units into level.
func (s *Snapshot) extendLevelLocked(level int) bool {
	src := s.levels[level-1]
	dst := s.levels[level]
	target := src.Len() >> s.scalePower
	if target <= dst.Len() {
		return false
	}

	s.growLevelLocked(level, target-dst.Len())

	var tmp [MaxUnitSize]byte
	unit := tmp[:s.unitSize]
	for o := dst.Len(); o < target; o++ {
		first := o * s.scaleFactor

		var acc uint64
		for k := first; k < first+s.scaleFactor; k++ {
			acc |= s.levelUnitLocked(level-1, k)
		}

		endian.PutUnit(s.engine, unit, acc)
		dst.Append(unit, 1)
	}

	return true
}

func (s *Snapshot) growLevelLocked(level, extra int) {
	if s.levels[level].Grow(extra) {
		s.logger.Debug("mip-map level grown",
			slog.Int("level", level),
			slog.Int("capacity", s.levels[level].Cap()),
			slog.Int("length", s.levels[level].Len()+extra))
	}
}
