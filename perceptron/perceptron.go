// Package perceptron implements the Perceptron Learning Algorithm, a linear
// binary classifier over the labels {-1, +1}.
//
// The weight vector carries the bias at index 0. Training prepends a constant
// 1 to every sample (the augmented feature vector) so the bias is learned like
// any other weight, and Predict expects the caller to pass vectors in that
// same augmented form. Classify and PredictBatch accept raw features and do
// the prepending themselves.
//
//	p, err := perceptron.New(perceptron.WithLearningRate(0.1), perceptron.WithRandomState(42))
//	if err != nil { ... }
//	if err := p.Fit(samples, labels); err != nil { ... }
//	label, err := p.Predict([]float64{1, x1, x2})
//
// A Perceptron must not be used from several goroutines at once: Fit mutates
// the weights in place.
package perceptron

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/pla/core/model"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

const modelName = "Perceptron"

// Perceptron is a binary linear classifier trained with the classic
// perceptron update rule.
type Perceptron struct {
	state *model.StateManager

	learningRate  float64
	maxIterations int
	randomState   *uint64
	rng           *rand.Rand
	logger        log.Logger
	id            string

	weights    []float64
	iterations int
	converged  bool
}

var _ model.Classifier = (*Perceptron)(nil)

// New returns an untrained Perceptron. It fails with ErrInvalidInput when the
// learning rate is not a positive finite number or the epoch cap is below 1.
func New(opts ...Option) (*Perceptron, error) {
	p := &Perceptron{
		state:         model.NewStateManager(),
		learningRate:  DefaultLearningRate,
		maxIterations: DefaultMaxIterations,
		logger:        log.GetLogger(),
		id:            uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if !(p.learningRate > 0) || math.IsInf(p.learningRate, 1) {
		return nil, errors.NewValidationError("learning_rate", "must be a positive finite number", p.learningRate)
	}
	if p.maxIterations < 1 {
		return nil, errors.NewValidationError("max_iterations", "must be at least 1", p.maxIterations)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p.logger = p.logger.With(log.ModelNameKey, modelName, log.EstimatorIDKey, p.id)
	return p, nil
}

// Fit trains the classifier on samples and their index-aligned labels.
//
// Every call starts over: the weights are redrawn uniformly from [0, 1) and
// the iteration counter is reset. Training stops after the first epoch
// without a misclassification, or after the configured number of epochs.
// Reaching the cap is not an error; it raises a ConvergenceWarning and
// Converged reports false.
//
// Invalid input leaves the classifier unchanged and returns an error marked
// with errors.ErrInvalidInput.
func (p *Perceptron) Fit(samples [][]float64, labels []float64) error {
	nFeatures, err := validateTrainingSet("Perceptron.Fit", samples, labels)
	if err != nil {
		p.logger.Error("Fit rejected input", err, log.OperationKey, log.OperationFit)
		return err
	}

	start := time.Now()
	p.logger.Debug("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(samples),
		log.FeaturesKey, nFeatures,
		log.LearningRateKey, p.learningRate,
		log.MaxIterationsKey, p.maxIterations,
	)

	p.state.Reset()
	p.weights = p.initWeights(nFeatures + 1)
	p.iterations = 0
	p.converged = false

	augmented := augmentAll(samples)
	debug := p.logger.Enabled(context.Background(), log.LevelDebug)

	for p.iterations < p.maxIterations {
		p.iterations++
		mistakes := p.runEpoch(augmented, labels)
		if debug {
			p.logger.Debug("Epoch finished", log.EpochKey, p.iterations, log.MisclassifiedKey, mistakes)
		}
		if mistakes == 0 {
			p.converged = true
			break
		}
	}

	p.state.SetDimensions(nFeatures, len(samples))
	p.state.SetFitted()

	if !p.converged {
		errors.Warn(errors.NewConvergenceWarning(modelName, p.iterations, "no epoch finished without a misclassification"))
	}

	p.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.IterationKey, p.iterations,
		log.ConvergedKey, p.converged,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// initWeights draws n independent weights from Uniform[0, 1).
func (p *Perceptron) initWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = p.rng.Float64()
	}
	return w
}

// runEpoch makes one pass over the augmented samples in order, applying
// w += lr * (y - ŷ) * x for every misclassified sample. It returns the number
// of misclassifications.
func (p *Perceptron) runEpoch(augmented [][]float64, labels []float64) int {
	mistakes := 0
	for i, x := range augmented {
		diff := labels[i] - activation(floats.Dot(x, p.weights))
		if diff != 0 {
			floats.AddScaled(p.weights, p.learningRate*diff, x)
			mistakes++
		}
	}
	return mistakes
}

// activation is the step function: +1 for z > 0, -1 otherwise (including
// z == 0).
func activation(z float64) float64 {
	if z > 0 {
		return 1
	}
	return -1
}

// Predict returns the label for an augmented sample, i.e. one whose first
// entry is the bias constant 1 followed by the features. Its length must
// equal len(Weights()).
func (p *Perceptron) Predict(sample []float64) (float64, error) {
	z, err := p.decision("Predict", sample)
	if err != nil {
		return 0, err
	}
	return activation(z), nil
}

// DecisionFunction returns the weighted sum z for an augmented sample.
func (p *Perceptron) DecisionFunction(sample []float64) (float64, error) {
	return p.decision("DecisionFunction", sample)
}

func (p *Perceptron) decision(method string, sample []float64) (float64, error) {
	if err := p.state.RequireFitted(modelName, method); err != nil {
		return 0, err
	}
	if len(sample) != len(p.weights) {
		return 0, errors.NewDimensionError(modelName+"."+method, len(p.weights), len(sample), 1)
	}
	if err := errors.CheckNumericalStability(modelName+"."+method, sample, 0); err != nil {
		return 0, err
	}
	return floats.Dot(sample, p.weights), nil
}

// Classify returns the label for raw features. It prepends the bias constant
// exactly like Fit does and delegates to Predict.
func (p *Perceptron) Classify(features []float64) (float64, error) {
	if err := p.state.RequireFitted(modelName, "Classify"); err != nil {
		return 0, err
	}
	if len(features)+1 != len(p.weights) {
		return 0, errors.NewDimensionError(modelName+".Classify", len(p.weights)-1, len(features), 1)
	}
	return p.Predict(augment(features))
}

// Iterations returns the number of epochs run by the most recent Fit, or 0
// if Fit has not been called.
func (p *Perceptron) Iterations() int {
	return p.iterations
}

// Converged reports whether the most recent Fit ended on an epoch without
// misclassifications.
func (p *Perceptron) Converged() bool {
	return p.converged
}

// IsFitted reports whether weights are available.
func (p *Perceptron) IsFitted() bool {
	return p.state.IsFitted()
}

// Weights returns a copy of the weight vector, bias first. It is nil before
// the first Fit.
func (p *Perceptron) Weights() []float64 {
	if p.weights == nil {
		return nil
	}
	return append([]float64(nil), p.weights...)
}

// SetWeights installs a weight vector (bias first, at least one feature
// weight). The classifier becomes fitted with an iteration count of 0.
func (p *Perceptron) SetWeights(w []float64) error {
	if len(w) < 2 {
		return errors.NewValidationError("weights", "need a bias and at least one feature weight", len(w))
	}
	if err := errors.CheckNumericalStability(modelName+".SetWeights", w, 0); err != nil {
		return err
	}
	p.weights = append([]float64(nil), w...)
	p.iterations = 0
	p.converged = false
	p.state.Reset()
	p.state.SetDimensions(len(w)-1, 0)
	p.state.SetFitted()
	return nil
}

// LearningRate returns the configured step size.
func (p *Perceptron) LearningRate() float64 {
	return p.learningRate
}

// MaxIterations returns the configured epoch cap.
func (p *Perceptron) MaxIterations() int {
	return p.maxIterations
}

// ID identifies this instance in log records.
func (p *Perceptron) ID() string {
	return p.id
}

// GetParams returns the hyperparameters.
func (p *Perceptron) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"learning_rate":  p.learningRate,
		"max_iterations": p.maxIterations,
	}
	if p.randomState != nil {
		params["random_state"] = *p.randomState
	}
	return params
}
