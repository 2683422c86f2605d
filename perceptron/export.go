package perceptron

import (
	"math"

	"github.com/YuminosukeSato/pla/core/model"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
)

// ExportWeights returns a serialisable snapshot of the trained classifier.
// Coefficients hold the feature weights and Intercept the bias weight.
func (p *Perceptron) ExportWeights() (*model.ModelWeights, error) {
	if err := p.state.RequireFitted(modelName, "ExportWeights"); err != nil {
		return nil, err
	}
	nFeatures, nSamples := p.state.GetDimensions()

	mw := &model.ModelWeights{
		ModelType:       modelName,
		Version:         model.WeightsVersion,
		Coefficients:    append([]float64(nil), p.weights[1:]...),
		Intercept:       p.weights[0],
		Hyperparameters: p.GetParams(),
		Metadata: map[string]interface{}{
			"iterations": p.iterations,
			"converged":  p.converged,
			"n_features": nFeatures,
			"n_samples":  nSamples,
		},
		IsFitted: true,
	}
	p.logger.Debug("Weights exported", log.OperationKey, log.OperationExport, log.FeaturesKey, nFeatures)
	return mw, nil
}

// ImportWeights installs weights from a snapshot produced by ExportWeights.
// Hyperparameters in the snapshot are ignored; use FromWeights to restore
// them as well.
func (p *Perceptron) ImportWeights(mw *model.ModelWeights) error {
	if mw == nil {
		return errors.NewValidationError("weights", "must not be nil", nil)
	}
	if err := mw.Validate(); err != nil {
		return err
	}
	if mw.ModelType != modelName {
		return errors.NewValidationError("model_type", "expected "+modelName, mw.ModelType)
	}
	if err := p.SetWeights(mw.Augmented()); err != nil {
		return err
	}

	// the epoch cap may have been lowered since the snapshot was taken
	if n, ok := metaInt(mw.Metadata, "iterations"); ok && n >= 0 {
		p.iterations = min(n, p.maxIterations)
	}
	if c, ok := mw.Metadata["converged"].(bool); ok {
		p.converged = c
	}
	if n, ok := metaInt(mw.Metadata, "n_samples"); ok {
		p.state.SetDimensions(len(mw.Coefficients), n)
	}

	p.logger.Debug("Weights imported", log.OperationKey, log.OperationImport, log.FeaturesKey, len(mw.Coefficients))
	return nil
}

// FromWeights builds a Perceptron whose hyperparameters come from the
// snapshot (overridable with opts) and whose weights are the snapshot's.
func FromWeights(mw *model.ModelWeights, opts ...Option) (*Perceptron, error) {
	if mw == nil {
		return nil, errors.NewValidationError("weights", "must not be nil", nil)
	}
	var base []Option
	if lr, ok := mw.Hyperparameters["learning_rate"].(float64); ok {
		base = append(base, WithLearningRate(lr))
	}
	if n, ok := metaInt(mw.Hyperparameters, "max_iterations"); ok {
		base = append(base, WithMaxIterations(n))
	}
	if seed, ok := metaUint(mw.Hyperparameters, "random_state"); ok {
		base = append(base, WithRandomState(seed))
	}
	p, err := New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := p.ImportWeights(mw); err != nil {
		return nil, err
	}
	return p, nil
}

// metaInt reads an integer stored either as a Go int or, after a JSON round
// trip, as a float64.
func metaInt(m map[string]interface{}, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// metaUint reads a seed stored as a Go integer or, after a JSON round trip,
// as a non-negative whole float64.
func metaUint(m map[string]interface{}, key string) (uint64, bool) {
	switch v := m[key].(type) {
	case uint64:
		return v, true
	case int:
		return uint64(v), v >= 0
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
