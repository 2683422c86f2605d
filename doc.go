// Package pla is a small machine learning module built around the Perceptron
// Learning Algorithm, a linear binary classifier over the labels {-1, +1}.
//
// # Packages
//
//   - perceptron: the classifier (Fit, Predict, Classify, PredictBatch, Score)
//   - dataset: CSV loading and writing, synthetic separable and XOR data
//   - preprocessing: feature standardization
//   - metrics: accuracy and the binary confusion matrix
//   - plot: decision boundary images for two-feature data
//   - core/model: fitted-state tracking and JSON weight snapshots
//   - core/parallel: range-chunked fan-out used for batch prediction
//   - pkg/errors, pkg/log, pkg/config: error kinds, zerolog logging, YAML settings
//
// The pla command in cmd/pla wraps these for use from a shell.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/pla/perceptron"
//	)
//
//	func main() {
//	    samples := [][]float64{{2, 2}, {4, 4}, {-2, -2}, {-4, -1}}
//	    labels := []float64{1, 1, -1, -1}
//
//	    p, err := perceptron.New(perceptron.WithLearningRate(0.01), perceptron.WithRandomState(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := p.Fit(samples, labels); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Predict takes the augmented vector: the bias constant 1, then the features.
//	    label, err := p.Predict([]float64{1, 3, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(label, p.Iterations(), p.Converged())
//	}
//
// # Error Handling
//
// Every error is classified with errors.Is against the sentinels in pkg/errors:
// ErrInvalidInput for malformed data or configuration, ErrNotTrained for use
// before Fit. Running out of epochs on data that is not linearly separable is
// not an error; it is reported through errors.Warn as a ConvergenceWarning.
package pla
