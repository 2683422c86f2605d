package model

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/google/go-cmp/cmp"
)

// stubModel は WeightExporter の最小実装
type stubModel struct {
	weights *ModelWeights
}

func (s *stubModel) ExportWeights() (*ModelWeights, error) {
	if s.weights == nil {
		return nil, errors.NewNotFittedError("stub", "ExportWeights")
	}
	return s.weights.Clone(), nil
}

func (s *stubModel) ImportWeights(w *ModelWeights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.weights = w.Clone()
	return nil
}

func fittedWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:       "Perceptron",
		Version:         WeightsVersion,
		Coefficients:    []float64{0.25, -1.5},
		Intercept:       0.125,
		Hyperparameters: map[string]interface{}{"learning_rate": 0.01},
		Metadata:        map[string]interface{}{"iterations": 3.0},
		IsFitted:        true,
	}
}

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	if s.IsFitted() {
		t.Fatal("new state should not be fitted")
	}

	err := s.RequireFitted("Perceptron", "Predict")
	if !errors.Is(err, errors.ErrNotTrained) {
		t.Errorf("RequireFitted() = %v, want ErrNotTrained", err)
	}

	s.SetDimensions(2, 4)
	s.SetFitted()
	if err := s.RequireFitted("Perceptron", "Predict"); err != nil {
		t.Errorf("RequireFitted() after SetFitted = %v", err)
	}

	state := s.GetState()
	if diff := cmp.Diff(ModelState{Fitted: true, NFeatures: 2, NSamples: 4}, state); diff != "" {
		t.Errorf("GetState() mismatch (-want +got):\n%s", diff)
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("Reset should clear the fitted flag")
	}
	if f, n := s.GetDimensions(); f != 0 || n != 0 {
		t.Errorf("Reset should clear dimensions, got (%d, %d)", f, n)
	}

	s.SetState(state)
	if !s.IsFitted() {
		t.Error("SetState should restore the fitted flag")
	}
}

func TestModelWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ModelWeights)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ModelWeights) {}},
		{name: "missing type", mutate: func(w *ModelWeights) { w.ModelType = "" }, wantErr: true},
		{name: "missing version", mutate: func(w *ModelWeights) { w.Version = "" }, wantErr: true},
		{name: "fitted without coefficients", mutate: func(w *ModelWeights) { w.Coefficients = nil }, wantErr: true},
		{name: "unfitted with coefficients", mutate: func(w *ModelWeights) { w.IsFitted = false }, wantErr: true},
		{name: "nan coefficient", mutate: func(w *ModelWeights) { w.Coefficients[1] = math.NaN() }, wantErr: true},
		{name: "inf intercept", mutate: func(w *ModelWeights) { w.Intercept = math.Inf(1) }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := fittedWeights()
			tt.mutate(w)
			err := w.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("Validate() error should be ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestModelWeights_AugmentedAndHash(t *testing.T) {
	w := fittedWeights()
	if diff := cmp.Diff([]float64{0.125, 0.25, -1.5}, w.Augmented()); diff != "" {
		t.Errorf("Augmented() mismatch (-want +got):\n%s", diff)
	}

	clone := w.Clone()
	if w.Hash() != clone.Hash() {
		t.Error("clone should hash identically")
	}
	clone.Coefficients[0] = 0.26
	if w.Hash() == clone.Hash() {
		t.Error("changing a coefficient should change the hash")
	}
	if w.Coefficients[0] != 0.25 {
		t.Error("Clone must not share coefficient storage")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	src := &stubModel{weights: fittedWeights()}

	var buf bytes.Buffer
	if err := SaveWeightsToWriter(src, &buf); err != nil {
		t.Fatalf("SaveWeightsToWriter() error = %v", err)
	}

	dst := &stubModel{}
	if err := LoadWeightsFromReader(dst, &buf); err != nil {
		t.Fatalf("LoadWeightsFromReader() error = %v", err)
	}
	if diff := cmp.Diff(src.weights, dst.weights); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := SaveWeights(src, path); err != nil {
		t.Fatalf("SaveWeights() error = %v", err)
	}
	fromFile := &stubModel{}
	if err := LoadWeights(fromFile, path); err != nil {
		t.Fatalf("LoadWeights() error = %v", err)
	}
	if fromFile.weights.Hash() != src.weights.Hash() {
		t.Error("file round trip changed the weights")
	}
}

func TestPersistence_Errors(t *testing.T) {
	if err := SaveWeightsToWriter(&stubModel{}, &bytes.Buffer{}); !errors.Is(err, errors.ErrNotTrained) {
		t.Errorf("saving an unfitted model should fail with ErrNotTrained, got %v", err)
	}

	err := LoadWeightsFromReader(&stubModel{}, bytes.NewBufferString("{not json"))
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("malformed JSON should fail with ErrInvalidInput, got %v", err)
	}

	if err := LoadWeights(&stubModel{}, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestReadWeights(t *testing.T) {
	src := &stubModel{weights: fittedWeights()}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := SaveWeights(src, path); err != nil {
		t.Fatalf("SaveWeights() error = %v", err)
	}

	mw, err := ReadWeights(path)
	if err != nil {
		t.Fatalf("ReadWeights() error = %v", err)
	}
	if diff := cmp.Diff(src.weights.Augmented(), mw.Augmented()); diff != "" {
		t.Errorf("ReadWeights() mismatch (-want +got):\n%s", diff)
	}

	// decoding validates: a fitted snapshot without coefficients is rejected
	_, err = DecodeWeights(bytes.NewBufferString(`{"model_type":"Perceptron","version":"1.0","is_fitted":true}`))
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("DecodeWeights() should reject an empty fitted snapshot, got %v", err)
	}
}

func TestModelWeights_Scaler(t *testing.T) {
	mw := fittedWeights()
	mw.Scaler = &ScalerWeights{Mean: []float64{1, 2}, Scale: []float64{0.5, 4}}
	if err := mw.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	clone := mw.Clone()
	clone.Scaler.Mean[0] = 99
	if mw.Scaler.Mean[0] != 1 {
		t.Error("Clone must not share scaler storage")
	}

	tests := []struct {
		name   string
		scaler *ScalerWeights
	}{
		{name: "feature count", scaler: &ScalerWeights{Mean: []float64{1}, Scale: []float64{1}}},
		{name: "length mismatch", scaler: &ScalerWeights{Mean: []float64{1, 2}, Scale: []float64{1}}},
		{name: "zero scale", scaler: &ScalerWeights{Mean: []float64{1, 2}, Scale: []float64{1, 0}}},
		{name: "NaN mean", scaler: &ScalerWeights{Mean: []float64{math.NaN(), 2}, Scale: []float64{1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := fittedWeights()
			bad.Scaler = tt.scaler
			if err := bad.Validate(); !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("Validate() = %v, want ErrInvalidInput", err)
			}
			if err := WriteWeights(bad, filepath.Join(t.TempDir(), "m.json")); err == nil {
				t.Error("WriteWeights() must refuse invalid weights")
			}
		})
	}
}
