package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "pla: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "pla: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 3, 2, 1)

	want := "pla: Predict: dimension mismatch on axis 1 (features). Expected 3, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}

	if !Is(err, ErrInvalidInput) {
		t.Error("DimensionError should be marked as ErrInvalidInput")
	}
	if Is(err, ErrNotTrained) {
		t.Error("DimensionError should not be marked as ErrNotTrained")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Perceptron", "Predict")

	want := "pla: Perceptron: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
	if !Is(err, ErrNotTrained) {
		t.Error("NotFittedError should be marked as ErrNotTrained")
	}
	if Is(err, ErrInvalidInput) {
		t.Error("NotFittedError should not be marked as ErrInvalidInput")
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		param   string
		value   interface{}
		message string
		wantMsg string
	}{
		{
			name:    "with message",
			op:      "New",
			param:   "learning_rate",
			value:   -0.5,
			message: "must be positive",
			wantMsg: "pla: New: learning_rate: -0.5 (must be positive)",
		},
		{
			name:    "without message",
			op:      "New",
			param:   "max_iterations",
			value:   0,
			message: "",
			wantMsg: "pla: New: max_iterations: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.message != "" {
				err = NewValueError(tt.op, fmt.Sprintf("%s: %v (%s)", tt.param, tt.value, tt.message))
			} else {
				err = NewValueError(tt.op, fmt.Sprintf("%s: %v", tt.param, tt.value))
			}

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var valErr *ValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}
			if !Is(err, ErrInvalidInput) {
				t.Error("ValueError should be marked as ErrInvalidInput")
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", 0.0)

	want := "pla: validation failed for parameter 'learning_rate': must be positive (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should be marked as ErrInvalidInput")
	}
}

func TestNewEmptyDataError(t *testing.T) {
	err := NewEmptyDataError("Perceptron.Fit")

	if !Is(err, ErrEmptyData) {
		t.Error("Expected Is(err, ErrEmptyData) to be true")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("Expected Is(err, ErrInvalidInput) to be true")
	}
	if !strings.Contains(err.Error(), "Perceptron.Fit") {
		t.Errorf("Expected message to name the operation, got %q", err.Error())
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("Perceptron", 1000, "training set is not linearly separable")

	want := "Perceptron failed to converge after 1000 iterations: training set is not linearly separable"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestWarnRouting(t *testing.T) {
	var handled, structured []error

	SetWarningHandler(func(w error) { handled = append(handled, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewConvergenceWarning("Perceptron", 5, ""))
	if len(handled) != 1 {
		t.Fatalf("expected fallback handler to receive 1 warning, got %d", len(handled))
	}

	SetZerologWarnFunc(func(w error) { structured = append(structured, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewConvergenceWarning("Perceptron", 5, ""))
	if len(structured) != 1 {
		t.Fatalf("expected zerolog func to receive 1 warning, got %d", len(structured))
	}
	if len(handled) != 1 {
		t.Errorf("fallback handler should not run while zerolog func is set")
	}
}

func TestWrapAndMark(t *testing.T) {
	base := New("bad row")
	marked := Mark(Wrap(base, "reading dataset"), ErrInvalidInput)

	if !Is(marked, ErrInvalidInput) {
		t.Error("Expected Is(marked, ErrInvalidInput) to be true")
	}
	if !Is(marked, base) {
		t.Error("Expected marked error to still match its cause")
	}
	if !strings.Contains(marked.Error(), "reading dataset") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Predict", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Predict: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("fit_input", []float64{1, -2, 0.5}, 0); err != nil {
		t.Errorf("finite values should pass, got %v", err)
	}

	err := CheckNumericalStability("fit_input", []float64{1, nan(), 3}, 4)
	if err == nil {
		t.Fatal("expected error for NaN input")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("numerical instability should be marked as ErrInvalidInput")
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("Error should be castable to *NumericalInstabilityError")
	}
	if numErr.Iteration != 4 || numErr.Operation != "fit_input" {
		t.Errorf("unexpected fields: %+v", numErr)
	}
}

func TestNumericalInstabilityError_CopiesValues(t *testing.T) {
	row := []float64{1, nan(), 3}
	err := CheckNumericalStability("predict_input", row, 1003)

	// the caller reuses its buffer for the next row
	row[0], row[1], row[2] = 7, 8, 9

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("Error should be castable to *NumericalInstabilityError")
	}
	if numErr.Values[0] != 1 || numErr.Values[2] != 3 || !math.IsNaN(numErr.Values[1]) {
		t.Errorf("error values changed with the caller's slice: %v", numErr.Values)
	}
	if !strings.Contains(err.Error(), "NaN") {
		t.Errorf("message should keep the offending value, got %q", err.Error())
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(1, 0); got != 0 {
		t.Errorf("SafeDivide(1, 0) = %v, want 0", got)
	}
	if got := SafeDivide(3, 4); got != 0.75 {
		t.Errorf("SafeDivide(3, 4) = %v, want 0.75", got)
	}
}
