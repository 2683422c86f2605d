package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/metrics"
	"github.com/YuminosukeSato/pla/perceptron"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/spf13/cobra"
)

type predictOptions struct {
	modelPath string
	dataPath  string
}

func newPredictCmd(a *app) *cobra.Command {
	o := &predictOptions{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print the predicted label of every row in a CSV file",
		Long: `predict prints one label (-1 or 1) per data row.

Rows may carry a label column or not; the model's feature count decides. When
labels are present, the accuracy is printed after the predictions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errors.SafeExecute("predict", func() error {
				return a.runPredict(o)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.modelPath, "model", "model.json", "weights written by train")
	flags.StringVar(&o.dataPath, "data", "", "CSV file to classify")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) runPredict(o *predictOptions) error {
	p, scaler, err := a.loadModel(o.modelPath)
	if err != nil {
		return err
	}
	ds, err := a.loadForModel(o.dataPath, p)
	if err != nil {
		return err
	}
	if ds, err = standardize(ds, scaler); err != nil {
		return err
	}

	X, y, err := ds.Matrix()
	if err != nil {
		return err
	}
	preds, err := p.PredictBatch(X)
	if err != nil {
		return err
	}
	for i := 0; i < preds.Len(); i++ {
		fmt.Fprintln(a.out, strconv.FormatFloat(preds.AtVec(i), 'g', -1, 64))
	}

	if y == nil {
		return nil
	}
	acc, err := metrics.Accuracy(y, preds)
	if err != nil {
		return err
	}
	cm, err := metrics.NewConfusionMatrix(y, preds)
	if err != nil {
		return err
	}
	precision, recall, f1 := cm.Scores()
	a.logger.Info("Predictions scored",
		log.SamplesKey, ds.Len(),
		log.AccuracyKey, acc,
		log.PrecisionKey, precision,
		log.RecallKey, recall,
		log.F1Key, f1,
	)
	fmt.Fprintf(a.out, "accuracy=%.4f\n", acc)
	return nil
}

// loadForModel reads a CSV file whose rows have either exactly the model's
// feature count (unlabelled) or one column more (labelled).
func (a *app) loadForModel(path string, p *perceptron.Perceptron) (*dataset.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", path)
	}
	nFeatures := len(p.Weights()) - 1

	opts := a.cfg.CSVOptions()
	opts.Unlabelled = true
	probe, err := dataset.LoadCSV(bytes.NewReader(raw), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	switch probe.NumFeatures() {
	case nFeatures:
		return probe, nil
	case nFeatures + 1:
		opts.Unlabelled = false
		ds, err := dataset.LoadCSV(bytes.NewReader(raw), opts)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
		return ds, nil
	default:
		return nil, errors.Wrapf(
			errors.NewDimensionError("predict", nFeatures, probe.NumFeatures(), 1),
			"%s has %d columns, model expects %d features", path, probe.NumFeatures(), nFeatures)
	}
}
