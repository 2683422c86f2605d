package main

import (
	"fmt"

	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	kind    string
	n       int
	margin  float64
	seed    uint64
	outPath string
}

func newGenerateCmd(a *app) *cobra.Command {
	o := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic two-feature dataset as CSV with a header row",
		Long: `generate writes one of the built-in datasets:

  separable  n points in [-1, 1]² split by a random line, at least --margin away from it
  xor        the four corners of the unit square labelled by exclusive or`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.kind, "kind", "separable", "separable or xor")
	flags.IntVar(&o.n, "n", 100, "number of samples (separable only)")
	flags.Float64Var(&o.margin, "margin", 0.05, "minimum distance from the separating line (separable only)")
	flags.Uint64Var(&o.seed, "seed", 1, "random seed (separable only)")
	flags.StringVar(&o.outPath, "out", "data.csv", "CSV file to write")
	return cmd
}

func (a *app) runGenerate(o *generateOptions) error {
	var ds *dataset.Dataset
	switch o.kind {
	case "separable":
		var err error
		if ds, err = dataset.Separable2D(o.n, o.margin, o.seed); err != nil {
			return err
		}
	case "xor":
		ds = dataset.XOR()
	default:
		return errors.NewValidationError("kind", "must be separable or xor", o.kind)
	}

	if err := dataset.WriteCSVFile(o.outPath, ds); err != nil {
		return err
	}
	a.logger.Info("Dataset written", log.DataPathKey, o.outPath, log.SamplesKey, ds.Len())
	fmt.Fprintln(a.out, o.outPath)
	return nil
}
