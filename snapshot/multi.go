package snapshot

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EdgesForChannels runs Edges for every channel in channels concurrently and
// returns the results keyed by channel.
//
// The first failing channel cancels the remaining work and its error is
// returned. A cancelled ctx stops channels that have not started yet.
func (s *Snapshot) EdgesForChannels(ctx context.Context, start, end, minLength uint64, channels []int) (map[int][]Edge, error) {
	results := make([][]Edge, len(channels))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, ch := range channels {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			edges, err := s.Edges(start, end, minLength, ch)
			if err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			results[i] = edges

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int][]Edge, len(channels))
	for i, ch := range channels {
		out[ch] = results[i]
	}

	return out, nil
}
