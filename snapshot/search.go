package snapshot

import "time"

// NextEdge returns the first transition of channel at or after sample from.
// The boolean is false when there is none.
func (s *Snapshot) NextEdge(from uint64, channel int) (Edge, bool, error) {
	return s.findEdge(from, channel, true)
}

// PrevEdge returns the last transition of channel at or before sample from.
// The boolean is false when there is none.
func (s *Snapshot) PrevEdge(from uint64, channel int) (Edge, bool, error) {
	return s.findEdge(from, channel, false)
}

func (s *Snapshot) findEdge(from uint64, channel int, forward bool) (Edge, bool, error) {
	if err := s.checkChannel(channel); err != nil {
		return Edge{}, false, err
	}

	began := time.Now()
	mask := uint64(1) << channel
	top := len(s.levels) - 1

	s.mu.RLock()
	n := uint64(s.raw.Len())

	var (
		idx int
		ok  bool
	)
	switch {
	case forward && from < n:
		idx, ok = s.firstTransitionLocked(top, int(max(from, 1)), int(n), mask) //nolint:gosec
	case !forward && n > 1:
		idx, ok = s.lastTransitionLocked(top, 1, int(min(from+1, n)), mask) //nolint:gosec
	}

	var e Edge
	if ok {
		e = Edge{Index: uint64(idx), Rising: s.rawUnitLocked(idx)&mask != 0} //nolint:gosec
	}
	s.mu.RUnlock()

	found := 0
	if ok {
		found = 1
	}
	s.observer.ObserveQuery(QueryFindEdge, found, time.Since(began))

	return e, ok, nil
}

// firstTransitionLocked returns the lowest transition index in [lo, hi).
func (s *Snapshot) firstTransitionLocked(level, lo, hi int, mask uint64) (int, bool) {
	if lo >= hi {
		return 0, false
	}
	if level == RawLevel {
		lo = max(lo, 1)
		if lo >= hi {
			return 0, false
		}
		prev := s.rawUnitLocked(lo - 1)
		for i := lo; i < hi; i++ {
			cur := s.rawUnitLocked(i)
			if (cur^prev)&mask != 0 {
				return i, true
			}
			prev = cur
		}

		return 0, false
	}

	shift := s.levelShift(level)
	first := int(pow2Ceil(uint64(lo), shift) >> shift) //nolint:gosec
	last := min(hi>>shift, s.levels[level].Len())
	if first >= last {
		return s.firstTransitionLocked(level-1, lo, hi, mask)
	}

	if i, ok := s.firstTransitionLocked(level-1, lo, first<<shift, mask); ok {
		return i, true
	}
	for o := first; o < last; o++ {
		if s.levelUnitLocked(level, o)&mask == 0 {
			continue
		}
		if i, ok := s.firstTransitionLocked(level-1, o<<shift, (o+1)<<shift, mask); ok {
			return i, true
		}
	}

	return s.firstTransitionLocked(level-1, last<<shift, hi, mask)
}

// lastTransitionLocked returns the highest transition index in [lo, hi).
func (s *Snapshot) lastTransitionLocked(level, lo, hi int, mask uint64) (int, bool) {
	if lo >= hi {
		return 0, false
	}
	if level == RawLevel {
		lo = max(lo, 1)
		if lo >= hi {
			return 0, false
		}
		next := s.rawUnitLocked(hi - 1)
		for i := hi - 1; i >= lo; i-- {
			prev := s.rawUnitLocked(i - 1)
			if (next^prev)&mask != 0 {
				return i, true
			}
			next = prev
		}

		return 0, false
	}

	shift := s.levelShift(level)
	first := int(pow2Ceil(uint64(lo), shift) >> shift) //nolint:gosec
	last := min(hi>>shift, s.levels[level].Len())
	if first >= last {
		return s.lastTransitionLocked(level-1, lo, hi, mask)
	}

	if i, ok := s.lastTransitionLocked(level-1, last<<shift, hi, mask); ok {
		return i, true
	}
	for o := last - 1; o >= first; o-- {
		if s.levelUnitLocked(level, o)&mask == 0 {
			continue
		}
		if i, ok := s.lastTransitionLocked(level-1, o<<shift, (o+1)<<shift, mask); ok {
			return i, true
		}
	}

	return s.lastTransitionLocked(level-1, lo, first<<shift, mask)
}
