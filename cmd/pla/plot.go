package main

import (
	"fmt"

	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/YuminosukeSato/pla/plot"
	"github.com/YuminosukeSato/pla/preprocessing"
	"github.com/spf13/cobra"
)

type plotOptions struct {
	modelPath string
	dataPath  string
	outPath   string
}

func newPlotCmd(a *app) *cobra.Command {
	o := &plotOptions{}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw a two-feature dataset and the model's decision line",
		Long: `plot renders the samples of a two-feature CSV file coloured by label,
together with the line w0 + w1*x1 + w2*x2 = 0 of a trained model. The image
format follows the --out extension (.png, .svg, .pdf).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errors.SafeExecute("plot", func() error {
				return a.runPlot(o)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.modelPath, "model", "", "weights written by train; omit to plot the data only")
	flags.StringVar(&o.dataPath, "data", "", "two-feature labelled CSV file")
	flags.StringVar(&o.outPath, "out", "boundary.png", "image to write")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) runPlot(o *plotOptions) error {
	var (
		weights []float64
		scaler  *preprocessing.StandardScaler
	)
	if o.modelPath != "" {
		p, s, err := a.loadModel(o.modelPath)
		if err != nil {
			return err
		}
		weights, scaler = p.Weights(), s
	}

	ds, err := dataset.LoadCSVFile(o.dataPath, a.cfg.CSVOptions())
	if err != nil {
		return err
	}
	// the line lives in the space the model was trained in
	if ds, err = standardize(ds, scaler); err != nil {
		return err
	}
	if err := plot.DecisionBoundary(ds, weights, o.outPath); err != nil {
		return err
	}

	a.logger.Info("Plot written", log.DataPathKey, o.outPath, log.SamplesKey, ds.Len())
	fmt.Fprintln(a.out, o.outPath)
	return nil
}
