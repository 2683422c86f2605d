package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "train")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "train" {
		t.Errorf("Expected operation 'train', got '%s'", panicErr.Operation)
	}
	if panicErr.PanicValue != "test panic message" {
		t.Errorf("Expected panic value 'test panic message', got '%v'", panicErr.PanicValue)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if want := "panic in train: test panic message"; panicErr.Error() != want {
		t.Errorf("Expected error message '%s', got '%s'", want, panicErr.Error())
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include the stack trace")
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "train")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "predict")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic with existing error, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("panic should be the primary error, got %T", err)
	}
	if !strings.Contains(fmt.Sprintf("%+v", err), "original error") {
		t.Errorf("detailed output should keep the original error: %+v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	t.Run("returns function error", func(t *testing.T) {
		want := fmt.Errorf("boom")
		err := SafeExecute("plot", func() error { return want })
		if !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	})

	t.Run("converts index panic", func(t *testing.T) {
		err := SafeExecute("plot", func() error {
			var weights []float64
			_ = weights[3]
			return nil
		})
		var panicErr *PanicError
		if !errors.As(err, &panicErr) {
			t.Fatalf("Expected PanicError, got %T", err)
		}
		if panicErr.Operation != "plot" {
			t.Errorf("unexpected operation %q", panicErr.Operation)
		}
	})
}
