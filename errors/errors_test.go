package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := InvalidPipeline("duplicate node id")
	want := `INVALID_PIPELINE: invalid pipeline: duplicate node id`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ConnectorFailed("fetch", "postgres", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be in the error chain")
	}
}

func TestAppError_Retryable(t *testing.T) {
	if !ConnectorFailed("fetch", "s3", nil).Retryable {
		t.Error("connector failures should be retryable")
	}
	if CycleDetected(2, 3).Retryable {
		t.Error("cycle errors should not be retryable")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(UnknownConnector("kafka")); got != ErrCodeUnknownConnector {
		t.Fatalf("expected UNKNOWN_CONNECTOR, got %s", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Fatalf("expected INTERNAL_ERROR for plain errors, got %s", got)
	}
	wrapped := fmt.Errorf("wrap: %w", CycleDetected(1, 2))
	if got := CodeOf(wrapped); got != ErrCodeCycleDetected {
		t.Fatalf("expected CYCLE_DETECTED through wrapping, got %s", got)
	}
}
