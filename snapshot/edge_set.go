package snapshot

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// EdgeSet is the set of sample indices at which any of a group of channels
// transitions. It answers nearest-edge lookups for cursor snapping.
//
// An EdgeSet is an immutable copy; it does not follow later appends.
type EdgeSet struct {
	bm *roaring64.Bitmap
}

// EdgeSetFor collects the transitions of channels in [start, end) into an EdgeSet.
func (s *Snapshot) EdgeSetFor(ctx context.Context, start, end, minLength uint64, channels []int) (*EdgeSet, error) {
	perChannel, err := s.EdgesForChannels(ctx, start, end, minLength, channels)
	if err != nil {
		return nil, err
	}

	bm := roaring64.New()
	for _, edges := range perChannel {
		for _, e := range edges {
			bm.Add(e.Index)
		}
	}
	bm.RunOptimize()

	return &EdgeSet{bm: bm}, nil
}

// Count returns the number of distinct edge positions.
func (es *EdgeSet) Count() uint64 {
	return es.bm.GetCardinality()
}

// Contains reports whether some channel transitions at index.
func (es *EdgeSet) Contains(index uint64) bool {
	return es.bm.Contains(index)
}

// Indices returns the edge positions in ascending order.
func (es *EdgeSet) Indices() []uint64 {
	return es.bm.ToArray()
}

// Next returns the first edge position at or after index.
func (es *EdgeSet) Next(index uint64) (uint64, bool) {
	if es.bm.Contains(index) {
		return index, true
	}

	// Rank counts the positions <= index, which is the ordinal of the next one.
	rank := es.bm.Rank(index)
	if rank >= es.bm.GetCardinality() {
		return 0, false
	}

	v, err := es.bm.Select(rank)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Prev returns the last edge position at or before index.
func (es *EdgeSet) Prev(index uint64) (uint64, bool) {
	rank := es.bm.Rank(index)
	if rank == 0 {
		return 0, false
	}

	v, err := es.bm.Select(rank - 1)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Nearest returns the edge position closest to index, preferring the earlier
// one on a tie.
func (es *EdgeSet) Nearest(index uint64) (uint64, bool) {
	prev, hasPrev := es.Prev(index)
	next, hasNext := es.Next(index)

	switch {
	case hasPrev && hasNext:
		if index-prev <= next-index {
			return prev, true
		}
		return next, true
	case hasPrev:
		return prev, true
	case hasNext:
		return next, true
	default:
		return 0, false
	}
}
