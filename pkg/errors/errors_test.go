package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCollectionError(t *testing.T) {
	originalErr := errors.New("proc unreadable")
	collErr := NewCollectionError("cpu", originalErr)

	expectedMsg := "collecting cpu metrics: proc unreadable"
	if collErr.Error() != expectedMsg {
		t.Errorf("CollectionError.Error() = %v, want %v", collErr.Error(), expectedMsg)
	}

	if unwrapped := collErr.Unwrap(); unwrapped != originalErr {
		t.Errorf("CollectionError.Unwrap() = %v, want %v", unwrapped, originalErr)
	}

	if !errors.Is(collErr, originalErr) {
		t.Error("Expected errors.Is to find the wrapped error")
	}
}

func TestIsCollectionError(t *testing.T) {
	collErr := NewCollectionError("disk", errors.New("device gone"))

	if !IsCollectionError(collErr) {
		t.Error("Expected IsCollectionError to be true for a CollectionError")
	}
	if !IsCollectionError(fmt.Errorf("tick failed: %w", collErr)) {
		t.Error("Expected IsCollectionError to see through wrapping")
	}
	if IsCollectionError(errors.New("plain error")) {
		t.Error("Expected IsCollectionError to be false for a plain error")
	}
	if IsCollectionError(nil) {
		t.Error("Expected IsCollectionError to be false for nil")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Expected Wrap(nil) to be nil")
	}

	wrapped := Wrap(ErrInvalidConfig, "loading file")
	expectedMsg := "loading file: invalid configuration"
	if wrapped.Error() != expectedMsg {
		t.Errorf("Wrap() = %v, want %v", wrapped.Error(), expectedMsg)
	}
	if !Is(wrapped, ErrInvalidConfig) {
		t.Error("Expected wrapped error to match its sentinel")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Expected Wrapf(nil) to be nil")
	}

	wrapped := Wrapf(ErrUnknownCategory, "category %q", "gpu")
	expectedMsg := `category "gpu": unknown metric category`
	if wrapped.Error() != expectedMsg {
		t.Errorf("Wrapf() = %v, want %v", wrapped.Error(), expectedMsg)
	}
	if !Is(wrapped, ErrUnknownCategory) {
		t.Error("Expected wrapped error to match its sentinel")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrAlreadyRunning,
		ErrNotRunning,
		ErrMonitoringDisabled,
		ErrShutdownTimeout,
		ErrUnknownCategory,
		ErrInvalidConfig,
		ErrUnsupportedPlatform,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Expected sentinels %v and %v to be distinct", a, b)
			}
		}
	}
}
