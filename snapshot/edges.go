package snapshot

import (
	"fmt"
	"time"

	"github.com/sigrokproject/logicstore/errs"
)

// Edge is a transition of one channel.
type Edge struct {
	// Index is the first sample at the new level.
	Index uint64
	// Rising is true for a low-to-high transition.
	Rising bool
}

// Span is a half-open range [Start, End) of sample indices.
type Span struct {
	Start uint64
	End   uint64
}

// Len returns the number of samples in the span.
func (sp Span) Len() uint64 {
	return sp.End - sp.Start
}

// Contains reports whether index lies inside the span.
func (sp Span) Contains(index uint64) bool {
	return index >= sp.Start && index < sp.End
}

// Edges returns the transitions of channel in the sample range [start, end),
// in ascending order.
//
// A transition at index i means sample i differs from sample i-1 on the
// channel; transitions are reported for start < i < end, so the first edge
// is relative to the level at start. end is clamped to SampleCount() and an
// empty or inverted range yields no edges.
//
// minLength is the number of samples one output element represents at the
// caller's zoom. The walk starts at the coarsest mip-map level whose unit
// span does not exceed minLength and only descends into spans whose summary
// shows a transition; values of 0 or 1 scan the raw samples directly. The
// result is exact at every minLength.
//
// Returns errs.ErrChannelOutOfRange for a channel beyond the unit width and
// errs.ErrInvalidRange when start lies beyond SampleCount().
func (s *Snapshot) Edges(start, end, minLength uint64, channel int) ([]Edge, error) {
	if err := s.checkChannel(channel); err != nil {
		return nil, err
	}

	began := time.Now()
	w := edgeWalker{s: s, mask: 1 << channel, edges: make([]Edge, 0)}

	s.mu.RLock()
	lo, hi, err := s.transitionRangeLocked(start, end)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	w.collect(s.startLevel(minLength), lo, hi)
	s.mu.RUnlock()

	s.observer.ObserveQuery(QueryEdges, len(w.edges), time.Since(began))

	return w.edges, nil
}

// ActivitySpans returns merged spans of [start, end) that contain at least
// one transition of channel, at the granularity of the level Edges would
// start from for minLength.
//
// Every transition Edges would report lies inside a returned span, and every
// mip-map block a span was built from contains a transition. Adjacent spans
// are merged. This is the cheap overview for zoom levels where individual
// edges are narrower than one output element.
func (s *Snapshot) ActivitySpans(start, end, minLength uint64, channel int) ([]Span, error) {
	if err := s.checkChannel(channel); err != nil {
		return nil, err
	}

	began := time.Now()
	w := activityWalker{s: s, mask: 1 << channel, spans: make([]Span, 0)}

	s.mu.RLock()
	lo, hi, err := s.transitionRangeLocked(start, end)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	w.collect(s.startLevel(minLength), lo, hi)
	s.mu.RUnlock()

	s.observer.ObserveQuery(QueryActivity, len(w.spans), time.Since(began))

	return w.spans, nil
}

// startLevel returns the coarsest level whose unit span is at most minLength,
// or RawLevel when no level qualifies.
func (s *Snapshot) startLevel(minLength uint64) int {
	for l := len(s.levels) - 1; l >= 0; l-- {
		if s.levelSpan(l) <= minLength {
			return l
		}
	}

	return RawLevel
}

// transitionRangeLocked converts the sample range [start, end) into the range
// of transition indices [lo, hi) to report.
func (s *Snapshot) transitionRangeLocked(start, end uint64) (int, int, error) {
	n := uint64(s.raw.Len())
	if start > n {
		return 0, 0, fmt.Errorf("%w: start %d beyond %d samples", errs.ErrInvalidRange, start, n)
	}

	end = min(end, n)
	if start+1 >= end {
		return 0, 0, nil
	}

	return int(start + 1), int(end), nil //nolint:gosec
}

// edgeWalker descends the mip-map collecting exact transitions.
type edgeWalker struct {
	s     *Snapshot
	mask  uint64
	edges []Edge
}

// collect appends the transitions in [lo, hi) starting at level.
// Full units of the level are skipped when their summary bit is clear;
// the unaligned head and tail are handed to the level below.
func (w *edgeWalker) collect(level, lo, hi int) {
	if lo >= hi {
		return
	}
	if level == RawLevel {
		w.scanRaw(lo, hi)
		return
	}

	shift := w.s.levelShift(level)
	first := int(pow2Ceil(uint64(lo), shift) >> shift) //nolint:gosec
	last := min(hi>>shift, w.s.levels[level].Len())
	if first >= last {
		w.collect(level-1, lo, hi)
		return
	}

	w.collect(level-1, lo, first<<shift)
	for o := first; o < last; o++ {
		if w.s.levelUnitLocked(level, o)&w.mask == 0 {
			continue
		}
		w.collect(level-1, o<<shift, (o+1)<<shift)
	}
	w.collect(level-1, last<<shift, hi)
}

func (w *edgeWalker) scanRaw(lo, hi int) {
	lo = max(lo, 1)
	if lo >= hi {
		return
	}

	prev := w.s.rawUnitLocked(lo-1)&w.mask != 0
	for i := lo; i < hi; i++ {
		cur := w.s.rawUnitLocked(i)&w.mask != 0
		if cur != prev {
			w.edges = append(w.edges, Edge{Index: uint64(i), Rising: cur})
			prev = cur
		}
	}
}

// activityWalker emits whole mip-map blocks instead of descending into them.
type activityWalker struct {
	s     *Snapshot
	mask  uint64
	spans []Span
}

func (w *activityWalker) collect(level, lo, hi int) {
	if lo >= hi {
		return
	}
	if level == RawLevel {
		w.scanRaw(lo, hi)
		return
	}

	shift := w.s.levelShift(level)
	first := int(pow2Ceil(uint64(lo), shift) >> shift) //nolint:gosec
	last := min(hi>>shift, w.s.levels[level].Len())
	if first >= last {
		w.collect(level-1, lo, hi)
		return
	}

	w.collect(level-1, lo, first<<shift)
	for o := first; o < last; o++ {
		if w.s.levelUnitLocked(level, o)&w.mask != 0 {
			w.add(o<<shift, (o+1)<<shift)
		}
	}
	w.collect(level-1, last<<shift, hi)
}

func (w *activityWalker) scanRaw(lo, hi int) {
	lo = max(lo, 1)
	if lo >= hi {
		return
	}

	prev := w.s.rawUnitLocked(lo - 1)
	for i := lo; i < hi; i++ {
		cur := w.s.rawUnitLocked(i)
		if (cur^prev)&w.mask != 0 {
			w.add(i, i+1)
		}
		prev = cur
	}
}

// add appends [start, end), merging it into the previous span when they touch.
func (w *activityWalker) add(start, end int) {
	sp := Span{Start: uint64(start), End: uint64(end)} //nolint:gosec
	if n := len(w.spans); n > 0 && w.spans[n-1].End >= sp.Start {
		w.spans[n-1].End = max(w.spans[n-1].End, sp.End)
		return
	}
	w.spans = append(w.spans, sp)
}
