package perceptron

import (
	"github.com/YuminosukeSato/pla/pkg/errors"
)

// validateTrainingSet checks that samples is non-empty, rectangular, finite,
// index-aligned with labels, and has at least one feature. It returns the
// feature count.
func validateTrainingSet(op string, samples [][]float64, labels []float64) (int, error) {
	if len(samples) == 0 {
		return 0, errors.NewEmptyDataError(op)
	}
	if len(labels) != len(samples) {
		return 0, errors.Wrap(errors.NewDimensionError(op, len(samples), len(labels), 0), "labels")
	}

	nFeatures := len(samples[0])
	if nFeatures == 0 {
		return 0, errors.NewValueError(op, "samples must have at least one feature")
	}
	for i, s := range samples {
		if len(s) != nFeatures {
			return 0, errors.Wrapf(errors.NewDimensionError(op, nFeatures, len(s), 1), "sample %d", i)
		}
		if err := errors.CheckNumericalStability(op, s, i); err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
	}
	if err := errors.CheckNumericalStability(op, labels, 0); err != nil {
		return 0, errors.Wrap(err, "labels")
	}
	return nFeatures, nil
}

// augment returns [1, features...].
func augment(features []float64) []float64 {
	out := make([]float64, len(features)+1)
	out[0] = 1
	copy(out[1:], features)
	return out
}

func augmentAll(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i, s := range samples {
		out[i] = augment(s)
	}
	return out
}
