// Package main provides the segloss CLI.
//
// Usage:
//
//	segloss version
//	segloss matrix --variant quarter-penalty
//	segloss eval --batch 2 --classes 33 --size 8 --lambda-ce 0.5
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/segloss"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "segloss",
		Short:         "Compound segmentation losses on the Born ML Framework",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			segloss.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd(), newMatrixCmd(), newEvalCmd())
	return root
}
