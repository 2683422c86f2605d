package main

import (
	"fmt"

	"github.com/YuminosukeSato/pla/core/model"
	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/perceptron"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/YuminosukeSato/pla/preprocessing"
	"github.com/spf13/cobra"
)

type trainOptions struct {
	dataPath string
	outPath  string
	lr       float64
	maxIter  int
	seed     uint64

	standardize bool
}

func newTrainCmd(a *app) *cobra.Command {
	o := &trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a perceptron to a labelled CSV file and save its weights",
		Example: `  pla train --data train.csv --out model.json
  pla train --data train.csv --out model.json --lr 0.1 --max-iter 500 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errors.SafeExecute("train", func() error {
				return a.runTrain(cmd, o)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.dataPath, "data", "", "labelled training CSV")
	flags.StringVar(&o.outPath, "out", "model.json", "where to write the weights")
	flags.Float64Var(&o.lr, "lr", perceptron.DefaultLearningRate, "learning rate")
	flags.IntVar(&o.maxIter, "max-iter", perceptron.DefaultMaxIterations, "epoch cap")
	flags.Uint64Var(&o.seed, "seed", 0, "seed for the initial weights")
	flags.BoolVar(&o.standardize, "standardize", false, "scale features to zero mean and unit variance before training")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) runTrain(cmd *cobra.Command, o *trainOptions) error {
	flags := cmd.Flags()
	if flags.Changed("lr") {
		a.cfg.Model.LearningRate = o.lr
	}
	if flags.Changed("max-iter") {
		a.cfg.Model.MaxIterations = o.maxIter
	}
	if flags.Changed("seed") {
		seed := o.seed
		a.cfg.Model.RandomState = &seed
	}
	if flags.Changed("standardize") {
		a.cfg.Data.Standardize = o.standardize
	}

	ds, err := dataset.LoadCSVFile(o.dataPath, a.cfg.CSVOptions())
	if err != nil {
		return err
	}

	var scaler *preprocessing.StandardScaler
	if a.cfg.Data.Standardize {
		scaler = preprocessing.NewStandardScaler()
		if err := scaler.Fit(ds.Samples); err != nil {
			return err
		}
		if ds, err = standardize(ds, scaler); err != nil {
			return err
		}
	}

	p, err := perceptron.New(a.cfg.PerceptronOptions()...)
	if err != nil {
		return err
	}
	if err := p.Fit(ds.Samples, ds.Labels); err != nil {
		return err
	}

	acc, err := p.Score(ds.Samples, ds.Labels)
	if err != nil {
		return err
	}

	mw, err := p.ExportWeights()
	if err != nil {
		return err
	}
	mw.Features = ds.Features
	if scaler != nil {
		if mw.Scaler, err = scaler.Weights(); err != nil {
			return err
		}
	}
	if err := model.WriteWeights(mw, o.outPath); err != nil {
		return err
	}

	a.logger.Info("Model saved",
		log.DataPathKey, o.outPath,
		log.IterationKey, p.Iterations(),
		log.ConvergedKey, p.Converged(),
		log.AccuracyKey, acc,
	)
	fmt.Fprintf(a.out, "iterations=%d converged=%t accuracy=%.4f\n", p.Iterations(), p.Converged(), acc)
	return nil
}
