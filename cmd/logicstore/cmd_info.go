package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sigrokproject/logicstore/segment"
	"github.com/spf13/cobra"
)

func newInfoCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <segment>",
		Short: "Print the segment header and mip-map statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSegment(args[0])
			if err != nil {
				return err
			}

			d, err := segment.NewDecoder(data)
			if err != nil {
				return err
			}
			snap, err := d.Snapshot(snapshotLogger(g))
			if err != nil {
				return err
			}

			h := d.Header()
			byteOrder := "little-endian"
			if h.Flag.IsBigEndian() {
				byteOrder = "big-endian"
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "unit size:\t%d bytes (%d channels, %s)\n", h.UnitSize, snap.ChannelCount(), byteOrder)
			fmt.Fprintf(w, "samples:\t%d\n", h.SampleCount)
			fmt.Fprintf(w, "encoding:\t%s\n", h.Flag.Encoding())
			fmt.Fprintf(w, "compression:\t%s\n", h.Flag.Compression())
			fmt.Fprintf(w, "payload:\t%d bytes (checksum %016x)\n", h.PayloadSize, h.Checksum)
			stats := d.Stats()
			fmt.Fprintf(w, "ratio:\t%.3f (%.1f%% saved of %d packed bytes)\n",
				stats.CompressionRatio(), stats.SpaceSavings(), stats.OriginalSize)
			fmt.Fprintf(w, "scale factor:\t%d\n", snap.ScaleFactor())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "level\tunits\tspan")
			for _, lvl := range snap.Levels() {
				fmt.Fprintf(w, "%d\t%d\t%d\n", lvl.Level, lvl.Length, lvl.Span)
			}

			return w.Flush()
		},
	}
}
