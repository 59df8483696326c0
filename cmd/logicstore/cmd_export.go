package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sigrokproject/logicstore/segment"
	"github.com/spf13/cobra"
)

func newExportCmd(g *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <segment>",
		Short: "Write the raw sample units of a segment",
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
			payload, err := d.Payload()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if _, err := w.Write(payload); err != nil {
				return fmt.Errorf("write samples: %w", err)
			}
			g.logger.Debug("samples exported", "samples", d.Header().SampleCount, "bytes", len(payload))

			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "file to write (- for stdout)")

	return cmd
}
