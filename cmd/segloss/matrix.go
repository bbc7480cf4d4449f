package main

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio/npy"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/segloss/distance"
)

type matrixOptions struct {
	variant distance.Variant
	table   string
	out     string
	raw     bool
}

func newMatrixCmd() *cobra.Command {
	opts := matrixOptions{variant: distance.QuarterPenalty}

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the class distance matrix used by the Wasserstein Dice loss",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadMatrix(opts.variant, opts.table, !opts.raw)
			if err != nil {
				return err
			}

			if opts.out != "" {
				return saveMatrix(opts.out, m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", mat.Formatted(m, mat.Squeeze()))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Var(&opts.variant, "variant", "distance table: quarter-penalty or equal")
	flags.StringVar(&opts.table, "table", "", "read the base table from a .npy file instead")
	flags.StringVarP(&opts.out, "out", "o", "", "write the matrix to a .npy file instead of printing it")
	flags.BoolVar(&opts.raw, "raw", false, "omit the background row and column")
	return cmd
}

// loadMatrix returns the host copy of a distance matrix, with the background
// class prepended unless raw tables are asked for.
func loadMatrix(v distance.Variant, path string, background bool) (*mat.Dense, error) {
	var (
		table *mat.Dense
		err   error
	)
	if path != "" {
		table, err = distance.LoadTable(path)
	} else {
		table, err = distance.DefaultTable(v)
	}
	if err != nil {
		return nil, err
	}
	if !background {
		return table, nil
	}
	return distance.WithBackground(table), nil
}

func saveMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := npy.Write(f, m); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
