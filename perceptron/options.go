package perceptron

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/pla/pkg/log"
)

const (
	// DefaultLearningRate is the step size used when WithLearningRate is not given.
	DefaultLearningRate = 0.01
	// DefaultMaxIterations is the epoch cap used when WithMaxIterations is not given.
	DefaultMaxIterations = 1000
)

// Option configures a Perceptron at construction time.
type Option func(*Perceptron)

// WithLearningRate sets the step size scaling each weight correction.
func WithLearningRate(lr float64) Option {
	return func(p *Perceptron) {
		p.learningRate = lr
	}
}

// WithMaxIterations sets the hard cap on training epochs.
func WithMaxIterations(n int) Option {
	return func(p *Perceptron) {
		p.maxIterations = n
	}
}

// WithSource sets the random source used to draw initial weights.
func WithSource(src rand.Source) Option {
	return func(p *Perceptron) {
		p.rng = rand.New(src)
		p.randomState = nil
	}
}

// WithRandomState seeds the weight initialisation so that fits are
// reproducible.
func WithRandomState(seed uint64) Option {
	return func(p *Perceptron) {
		p.rng = rand.New(rand.NewPCG(seed, seed))
		p.randomState = &seed
	}
}

// WithLogger sets the logger for training and inference records.
func WithLogger(logger log.Logger) Option {
	return func(p *Perceptron) {
		p.logger = logger
	}
}
