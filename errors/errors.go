// Package errors provides structured error types for the pipeline engine,
// with machine-readable codes and retryable detection.
package errors

import (
	"errors"
	"fmt"
)

// AppError is the unified engine error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf extracts the error code from an error chain, or ErrCodeInternal
// for errors that are not AppErrors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// --- Common Error Constructors ---

// InvalidPipeline creates a new AppError for a structurally invalid pipeline.
func InvalidPipeline(reason string) *AppError {
	return New(ErrCodeInvalidPipeline, fmt.Sprintf("invalid pipeline: %s", reason))
}

// CycleDetected creates a new AppError for a pipeline whose edges form a cycle.
func CycleDetected(processed, total int) *AppError {
	return New(ErrCodeCycleDetected,
		fmt.Sprintf("cycle detected: ordered %d of %d nodes", processed, total)).
		WithDetail("ordered", processed).
		WithDetail("total", total)
}

// UnknownNode creates a new AppError for an edge referencing a missing node.
func UnknownNode(id string) *AppError {
	return New(ErrCodeUnknownNode, fmt.Sprintf("edge references unknown node %q", id)).
		WithDetail("node", id)
}

// InvalidConfig creates a new AppError for a malformed node config bag.
func InvalidConfig(nodeID, reason string) *AppError {
	return New(ErrCodeInvalidConfig, fmt.Sprintf("node %q: %s", nodeID, reason)).
		WithDetail("node", nodeID)
}

// UnknownConnector creates a new AppError for an unregistered connector type.
func UnknownConnector(connectorType string) *AppError {
	return New(ErrCodeUnknownConnector, fmt.Sprintf("no connector registered for type %q", connectorType)).
		WithDetail("connector_type", connectorType)
}

// ConnectorFailed creates a new AppError for a failed connector operation.
func ConnectorFailed(op, connectorType string, cause error) *AppError {
	return New(ErrCodeConnectorFailed, fmt.Sprintf("connector %q: %s failed", connectorType, op)).
		WithDetail("connector_type", connectorType).
		WithDetail("operation", op).
		WithCause(cause)
}

// Internal creates a new AppError for an unexpected engine failure.
func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}
