package main

import (
	"io"

	"github.com/YuminosukeSato/pla/core/model"
	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/perceptron"
	"github.com/YuminosukeSato/pla/pkg/config"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/YuminosukeSato/pla/preprocessing"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	pretty     bool

	// data layout flags, applied over the config file
	header      bool
	labelColumn int

	cfg    *config.Config
	logger log.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "pla",
		Short: "Perceptron Learning Algorithm",
		Long: `pla trains a perceptron, a linear binary classifier, on CSV data.

Each CSV row is one sample: numeric feature columns plus a label column
holding -1 or +1 (the last column unless configured otherwise).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.pretty, "pretty", false, "human readable log output")
	flags.BoolVar(&a.header, "header", false, "the CSV data starts with a header row")
	flags.IntVar(&a.labelColumn, "label-column", dataset.LastColumn, "0-based label column; negative counts from the end")

	root.AddCommand(
		newTrainCmd(a),
		newPredictCmd(a),
		newPlotCmd(a),
		newGenerateCmd(a),
	)
	return root
}

// setup loads the config, applies persistent flags over it and installs the
// process logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("pretty") {
		cfg.Logging.Pretty = a.pretty
	}
	if flags.Changed("header") {
		cfg.Data.HasHeader = a.header
	}
	if flags.Changed("label-column") {
		cfg.Data.LabelColumn = a.labelColumn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := log.SetupLogger(a.errOut, cfg.Logging.Level, cfg.Logging.Pretty); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log.GetLoggerWithName("cli").With(log.OperationKey, cmd.Name())
	return nil
}

// loadModel rebuilds a classifier, hyperparameters included, from a weights
// file. The scaler is nil unless the model was trained on standardized data.
func (a *app) loadModel(path string) (*perceptron.Perceptron, *preprocessing.StandardScaler, error) {
	mw, err := model.ReadWeights(path)
	if err != nil {
		return nil, nil, err
	}
	p, err := perceptron.FromWeights(mw)
	if err != nil {
		return nil, nil, err
	}
	var scaler *preprocessing.StandardScaler
	if mw.Scaler != nil {
		if scaler, err = preprocessing.NewStandardScalerFromWeights(mw.Scaler); err != nil {
			return nil, nil, err
		}
	}
	a.logger.Debug("Model loaded", log.DataPathKey, path, log.FeaturesKey, len(mw.Coefficients), "standardized", scaler != nil)
	return p, scaler, nil
}

// standardize returns ds with its samples passed through scaler, or ds
// itself when scaler is nil.
func standardize(ds *dataset.Dataset, scaler *preprocessing.StandardScaler) (*dataset.Dataset, error) {
	if scaler == nil {
		return ds, nil
	}
	samples, err := scaler.Transform(ds.Samples)
	if err != nil {
		return nil, err
	}
	return &dataset.Dataset{Features: ds.Features, Samples: samples, Labels: ds.Labels}, nil
}
