// Package dataset holds labelled samples for binary classification and reads
// and writes them as CSV.
package dataset

import (
	"github.com/YuminosukeSato/pla/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a set of samples with index-aligned labels. Labels is nil for
// unlabelled data.
type Dataset struct {
	// Features names the sample columns when the source had a header.
	Features []string
	Samples  [][]float64
	Labels   []float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// NumFeatures returns the width of the first sample, or 0 for an empty set.
func (d *Dataset) NumFeatures() int {
	if len(d.Samples) == 0 {
		return 0
	}
	return len(d.Samples[0])
}

// Labelled reports whether the dataset carries labels.
func (d *Dataset) Labelled() bool {
	return d.Labels != nil
}

// Validate checks that the dataset is non-empty and rectangular, that every
// value is finite, and that labels, when present, are -1 or +1 and as many as
// the samples.
func (d *Dataset) Validate() error {
	const op = "Dataset.Validate"

	if len(d.Samples) == 0 {
		return errors.NewEmptyDataError(op)
	}
	n := d.NumFeatures()
	if n == 0 {
		return errors.NewValueError(op, "samples must have at least one feature")
	}
	for i, s := range d.Samples {
		if len(s) != n {
			return errors.Wrapf(errors.NewDimensionError(op, n, len(s), 1), "sample %d", i)
		}
		if err := errors.CheckNumericalStability(op, s, i); err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
	}
	if d.Features != nil && len(d.Features) != n {
		return errors.NewValidationError("features", "one name per sample column", len(d.Features))
	}
	if d.Labels == nil {
		return nil
	}
	if len(d.Labels) != len(d.Samples) {
		return errors.Wrap(errors.NewDimensionError(op, len(d.Samples), len(d.Labels), 0), "labels")
	}
	for i, y := range d.Labels {
		if y != 1 && y != -1 {
			return errors.Wrapf(errors.NewValidationError("label", "must be -1 or +1", y), "sample %d", i)
		}
	}
	return nil
}

// Matrix returns the samples as an n×d matrix and the labels as a vector.
// The vector is nil for unlabelled data.
func (d *Dataset) Matrix() (*mat.Dense, *mat.VecDense, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	X := mat.NewDense(d.Len(), d.NumFeatures(), nil)
	for i, s := range d.Samples {
		X.SetRow(i, s)
	}
	if d.Labels == nil {
		return X, nil, nil
	}
	y := mat.NewVecDense(len(d.Labels), append([]float64(nil), d.Labels...))
	return X, y, nil
}

// Split returns the first ⌊n·frac⌋ samples and the rest as two datasets
// sharing the underlying rows.
func (d *Dataset) Split(frac float64) (*Dataset, *Dataset, error) {
	if !(frac > 0 && frac < 1) {
		return nil, nil, errors.NewValidationError("frac", "must be in (0, 1)", frac)
	}
	cut := int(float64(d.Len()) * frac)
	if cut == 0 || cut == d.Len() {
		return nil, nil, errors.NewValueError("Dataset.Split", "both parts must be non-empty")
	}
	head := &Dataset{Features: d.Features, Samples: d.Samples[:cut]}
	tail := &Dataset{Features: d.Features, Samples: d.Samples[cut:]}
	if d.Labels != nil {
		head.Labels = d.Labels[:cut]
		tail.Labels = d.Labels[cut:]
	}
	return head, tail, nil
}
