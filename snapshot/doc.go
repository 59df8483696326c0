// Package snapshot implements a multi-resolution store for captured logic samples.
//
// A Snapshot accumulates bit-packed sample units, one unit per sample tick,
// where bit i of a unit is the level of channel i. Alongside the raw samples
// it maintains a mip-map: a fixed number of decimation levels, each unit of
// which summarizes ScaleFactor units of the level below. Edge queries walk the
// mip-map from coarse to fine and only descend where a summary says the
// channel changed, so their cost follows the number of transitions returned
// rather than the number of samples stored.
//
// # Mip-map layout
//
// Level 0 unit o covers raw samples [o*F, (o+1)*F) where F is the scale
// factor. Its bit i is set iff channel i changes level at some sample in that
// span, i.e. raw[k] differs from raw[k-1] for some k in the span. Level L > 0
// unit o is the bitwise OR of level L-1 units [o*F, (o+1)*F), so it covers F^(L+1)
// raw samples. A clear bit therefore proves the channel is constant across the
// span, and a set bit proves at least one transition exists inside it.
//
// Only complete units are stored: level L always holds
// floor(len(level L-1) / F) units (the raw buffer for level 0). Appends extend
// every level incrementally without rescanning earlier samples.
//
// # Concurrency
//
// A Snapshot is safe for one appending goroutine and any number of querying
// goroutines. Every method takes the instance's lock exactly once; once
// Append returns, all later queries observe the new samples together with
// the updated mip-map.
//
// # Basic Usage
//
//	snap, err := snapshot.New(1) // 8 channels
//	if err != nil {
//	    return err
//	}
//
//	_ = snap.Append(batch, len(batch))
//
//	edges, err := snap.Edges(0, snap.SampleCount(), samplesPerPixel, 0)
//	for _, e := range edges {
//	    fmt.Println(e.Index, e.Rising)
//	}
package snapshot
