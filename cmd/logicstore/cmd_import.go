package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sigrokproject/logicstore/format"
	"github.com/sigrokproject/logicstore/internal/hash"
	"github.com/sigrokproject/logicstore/metrics"
	"github.com/sigrokproject/logicstore/segment"
	"github.com/sigrokproject/logicstore/snapshot"
	"github.com/spf13/cobra"
)

type importOptions struct {
	unitSize    int
	bigEndian   bool
	batchUnits  int
	scalePower  int
	levelCount  int
	encoding    string
	compression string
	output      string
}

func newImportCmd(g *globalOptions) *cobra.Command {
	o := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <raw-file>",
		Short: "Stream a raw sample file into a segment blob",
		Long: `import reads packed sample units from a raw capture file (use - for stdin),
appends them to a snapshot in batches and writes the snapshot as a segment blob.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, g, o, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.unitSize, "unit-size", "u", 1, "bytes per sample unit (1-8)")
	f.BoolVar(&o.bigEndian, "big-endian", false, "units in the input are big-endian")
	f.IntVar(&o.batchUnits, "batch", 1<<16, "units appended per batch")
	f.IntVar(&o.scalePower, "scale-power", snapshot.DefaultScalePower, "log2 of the mip-map scale factor")
	f.IntVar(&o.levelCount, "levels", snapshot.DefaultLevelCount, "number of mip-map levels")
	f.StringVarP(&o.encoding, "encoding", "e", "rle", "payload encoding (raw, rle)")
	f.StringVarP(&o.compression, "compression", "c", "zstd", "payload compression (none, zstd, s2, lz4)")
	f.StringVarP(&o.output, "output", "o", "", "segment file to write (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runImport(cmd *cobra.Command, g *globalOptions, o *importOptions, input string) error {
	enc, ok := format.ParseEncodingType(o.encoding)
	if !ok {
		return fmt.Errorf("unknown encoding %q", o.encoding)
	}
	comp, ok := format.ParseCompressionType(o.compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", o.compression)
	}
	if o.batchUnits < 1 {
		return fmt.Errorf("--batch must be positive: %d", o.batchUnits)
	}

	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	reg := prometheus.NewRegistry()
	opts := []snapshot.Option{
		snapshot.WithGeometry(o.scalePower, o.levelCount),
		snapshot.WithLogger(g.logger),
		snapshot.WithObserver(metrics.NewObserver(reg)),
	}
	if o.bigEndian {
		opts = append(opts, snapshot.WithBigEndianUnits())
	}

	snap, err := snapshot.New(o.unitSize, opts...)
	if err != nil {
		return err
	}
	collector := metrics.NewCollector()
	collector.Add("import", snap)
	reg.MustRegister(collector)

	digest := hash.NewDigest()
	began := time.Now()
	if err := appendAll(snap, io.TeeReader(r, digest), o.batchUnits); err != nil {
		return err
	}

	blob, err := segment.Encode(snap, segment.WithEncoding(enc), segment.WithCompression(comp))
	if err != nil {
		return fmt.Errorf("encode segment: %w", err)
	}
	if err := os.WriteFile(o.output, blob, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write segment: %w", err)
	}

	g.logger.Info("capture imported",
		slog.Uint64("samples", snap.SampleCount()),
		slog.String("input_xxhash", fmt.Sprintf("%016x", digest.Sum64())),
		slog.Int("segment_bytes", len(blob)),
		slog.Duration("elapsed", time.Since(began)),
		slog.Float64("append_seconds", gatheredValue(reg, "logicstore_append_duration_seconds")),
		slog.Float64("allocated_bytes", gatheredValue(reg, "logicstore_snapshot_allocated_bytes")))

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d samples, %d bytes (%s/%s)\n",
		o.output, snap.SampleCount(), len(blob), enc, comp)

	return nil
}

// appendAll streams whole units from r into snap, batchUnits at a time.
// A trailing partial unit is an error.
func appendAll(snap *snapshot.Snapshot, r io.Reader, batchUnits int) error {
	unitSize := snap.UnitSize()
	buf := make([]byte, batchUnits*unitSize)

	for {
		n, err := io.ReadFull(r, buf)
		if units := n / unitSize; units > 0 {
			if appendErr := snap.Append(buf, units); appendErr != nil {
				return appendErr
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			if rem := n % unitSize; rem != 0 {
				return fmt.Errorf("input ends inside a sample unit: %d trailing bytes", rem)
			}
			return nil
		default:
			return fmt.Errorf("read input: %w", err)
		}
	}
}

// gatheredValue returns the first sample of the named family: the gauge
// value, or the observed sum for a histogram.
func gatheredValue(g prometheus.Gatherer, name string) float64 {
	families, err := g.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != name || len(mf.GetMetric()) == 0 {
			continue
		}
		m := mf.GetMetric()[0]
		if h := m.GetHistogram(); h != nil {
			return h.GetSampleSum()
		}

		return m.GetGauge().GetValue()
	}

	return 0
}
