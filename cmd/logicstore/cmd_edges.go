package main

import (
	"bufio"
	"fmt"
	"math"
	"slices"

	"github.com/sigrokproject/logicstore/segment"
	"github.com/sigrokproject/logicstore/snapshot"
	"github.com/spf13/cobra"
)

type edgesOptions struct {
	channels  []int
	start     uint64
	end       uint64
	minLength uint64
	activity  bool
}

func newEdgesCmd(g *globalOptions) *cobra.Command {
	o := &edgesOptions{}

	cmd := &cobra.Command{
		Use:   "edges <segment>",
		Short: "Print the transitions of channels over a sample range",
		Long: `edges prints one line per transition: sample index, channel and direction.
With --activity it prints the sample spans that contain activity at the zoom
level selected by --min-length instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdges(cmd, g, o, args[0])
		},
	}

	f := cmd.Flags()
	f.IntSliceVarP(&o.channels, "channel", "C", []int{0}, "channels to query")
	f.Uint64Var(&o.start, "start", 0, "first sample of the range")
	f.Uint64Var(&o.end, "end", math.MaxUint64, "end of the range (exclusive, clamped to the sample count)")
	f.Uint64VarP(&o.minLength, "min-length", "m", 1, "samples per screen pixel; selects the starting mip-map level")
	f.BoolVar(&o.activity, "activity", false, "print active spans instead of edges")

	return cmd
}

func runEdges(cmd *cobra.Command, g *globalOptions, o *edgesOptions, path string) error {
	data, err := readSegment(path)
	if err != nil {
		return err
	}
	snap, err := segment.Decode(data, snapshotLogger(g))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())

	if o.activity {
		for _, ch := range o.channels {
			spans, err := snap.ActivitySpans(o.start, o.end, o.minLength, ch)
			if err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			for _, sp := range spans {
				fmt.Fprintf(w, "%d\t%d\t%d\n", ch, sp.Start, sp.End)
			}
		}

		return w.Flush()
	}

	perChannel, err := snap.EdgesForChannels(cmd.Context(), o.start, o.end, o.minLength, o.channels)
	if err != nil {
		return err
	}

	type channelEdge struct {
		channel int
		edge    snapshot.Edge
	}
	var all []channelEdge
	for ch, edges := range perChannel {
		for _, e := range edges {
			all = append(all, channelEdge{channel: ch, edge: e})
		}
	}
	slices.SortFunc(all, func(a, b channelEdge) int {
		if a.edge.Index != b.edge.Index {
			if a.edge.Index < b.edge.Index {
				return -1
			}
			return 1
		}
		return a.channel - b.channel
	})

	for _, ce := range all {
		dir := "falling"
		if ce.edge.Rising {
			dir = "rising"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", ce.edge.Index, ce.channel, dir)
	}

	return w.Flush()
}

func snapshotLogger(g *globalOptions) snapshot.Option {
	return snapshot.WithLogger(g.logger)
}
