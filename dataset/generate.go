package dataset

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/pla/pkg/errors"
)

// XOR returns the four corners of the unit square labelled by exclusive or.
// It is the smallest dataset no line can separate.
func XOR() *Dataset {
	return &Dataset{
		Features: []string{"x1", "x2"},
		Samples:  [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		Labels:   []float64{-1, 1, 1, -1},
	}
}

// Separable2D draws n points uniformly from [-1, 1]² and labels them by the
// side of the line w0 + w1·x1 + w2·x2 = 0 they fall on, for a line picked at
// random through the square. Points closer to the line than margin are
// redrawn, so the result is linearly separable with at least that margin.
func Separable2D(n int, margin float64, seed uint64) (*Dataset, error) {
	if n < 1 {
		return nil, errors.NewValidationError("n", "must be at least 1", n)
	}
	if !(margin >= 0 && margin < 0.5) {
		return nil, errors.NewValidationError("margin", "must be in [0, 0.5)", margin)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	uniform := func() float64 { return 2*rng.Float64() - 1 }

	// a random direction plus an offset that keeps the line inside the square
	theta := 2 * math.Pi * rng.Float64()
	w1, w2 := math.Cos(theta), math.Sin(theta)
	w0 := 0.5 * uniform()

	ds := &Dataset{
		Features: []string{"x1", "x2"},
		Samples:  make([][]float64, 0, n),
		Labels:   make([]float64, 0, n),
	}
	for len(ds.Samples) < n {
		x1, x2 := uniform(), uniform()
		z := w0 + w1*x1 + w2*x2 // (w1, w2) is a unit vector, so |z| is the distance
		if math.Abs(z) <= margin {
			continue
		}
		label := -1.0
		if z > 0 {
			label = 1
		}
		ds.Samples = append(ds.Samples, []float64{x1, x2})
		ds.Labels = append(ds.Labels, label)
	}
	return ds, nil
}
