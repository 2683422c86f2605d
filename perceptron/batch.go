package perceptron

import (
	"github.com/YuminosukeSato/pla/core/parallel"
	"github.com/YuminosukeSato/pla/metrics"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// rows below this count are predicted on the calling goroutine
const parallelThreshold = 1000

// FitMatrix trains on an n×d feature matrix and an n×1 label matrix.
func (p *Perceptron) FitMatrix(X, y mat.Matrix) error {
	const op = "Perceptron.FitMatrix"

	r, c := X.Dims()
	ry, cy := y.Dims()
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}

	samples := make([][]float64, r)
	labels := make([]float64, r)
	for i := 0; i < r; i++ {
		samples[i] = mat.Row(make([]float64, c), i, X)
		labels[i] = y.At(i, 0)
	}
	return p.Fit(samples, labels)
}

// PredictBatch classifies every row of X, a matrix of raw features. Each row
// is augmented with the bias constant like in Fit. Large inputs are split
// across CPU cores.
func (p *Perceptron) PredictBatch(X mat.Matrix) (*mat.VecDense, error) {
	const op = "Perceptron.PredictBatch"

	if err := p.state.RequireFitted(modelName, "PredictBatch"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewEmptyDataError(op)
	}
	if c+1 != len(p.weights) {
		return nil, errors.NewDimensionError(op, len(p.weights)-1, c, 1)
	}

	out := mat.NewVecDense(r, nil)
	weights := p.weights
	err := parallel.ParallelizeErr(r, parallelThreshold, func(start, end int) error {
		x := make([]float64, c+1)
		x[0] = 1
		for i := start; i < end; i++ {
			mat.Row(x[1:], i, X)
			if err := errors.CheckNumericalStability(op, x, i); err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			out.SetVec(i, activation(floats.Dot(x, weights)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Batch predicted", log.OperationKey, log.OperationPredict, log.PredsKey, r)
	return out, nil
}

// predictAll validates a labelled evaluation set against the fitted feature
// count and returns the predicted labels.
func (p *Perceptron) predictAll(method string, samples [][]float64, labels []float64) ([]float64, error) {
	if err := p.state.RequireFitted(modelName, method); err != nil {
		return nil, err
	}
	op := modelName + "." + method
	nFeatures, err := validateTrainingSet(op, samples, labels)
	if err != nil {
		return nil, err
	}
	if nFeatures+1 != len(p.weights) {
		return nil, errors.NewDimensionError(op, len(p.weights)-1, nFeatures, 1)
	}

	X := mat.NewDense(len(samples), nFeatures, nil)
	for i, s := range samples {
		X.SetRow(i, s)
	}
	preds, err := p.PredictBatch(X)
	if err != nil {
		return nil, err
	}
	return preds.RawVector().Data, nil
}

// Score returns the fraction of samples whose predicted label equals the
// given label. Samples are raw features.
func (p *Perceptron) Score(samples [][]float64, labels []float64) (float64, error) {
	preds, err := p.predictAll("Score", samples, labels)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.AccuracySlice(labels, preds)
	if err != nil {
		return 0, err
	}
	p.logger.Debug("Scored", log.OperationKey, log.OperationScore, log.SamplesKey, len(samples), log.AccuracyKey, acc)
	return acc, nil
}

// Misclassified counts the samples whose predicted label differs from the
// given label. Samples are raw features.
func (p *Perceptron) Misclassified(samples [][]float64, labels []float64) (int, error) {
	preds, err := p.predictAll("Misclassified", samples, labels)
	if err != nil {
		return 0, err
	}
	wrong := 0
	for i, y := range labels {
		if preds[i] != y {
			wrong++
		}
	}
	return wrong, nil
}
