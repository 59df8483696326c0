package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "logicstore",
		Short: "Store and query multi-channel logic captures",
		Long: `logicstore keeps packed logic-analyzer samples in a multi-resolution
snapshot and answers edge queries over arbitrary sample ranges.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), g.logLevel)
			if err != nil {
				return err
			}
			g.logger = logger

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newImportCmd(g),
		newInfoCmd(g),
		newEdgesCmd(g),
		newExportCmd(g),
	)

	return rootCmd
}

func readSegment(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read segment: %w", err)
	}

	return data, nil
}
