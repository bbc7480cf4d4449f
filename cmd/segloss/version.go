package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/segloss"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "segloss %s\n", segloss.Version)
		},
	}
}
