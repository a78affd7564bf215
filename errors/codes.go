package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (not retryable: the pipeline definition is wrong)
const (
	// ErrCodeInvalidPipeline indicates a structurally invalid pipeline definition.
	ErrCodeInvalidPipeline ErrorCode = "INVALID_PIPELINE"
	// ErrCodeCycleDetected indicates the pipeline's edges contain a cycle.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"
	// ErrCodeUnknownNode indicates an edge references a node that does not exist.
	ErrCodeUnknownNode ErrorCode = "UNKNOWN_NODE"
	// ErrCodeInvalidConfig indicates a node's config bag is malformed.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Connector errors
const (
	// ErrCodeUnknownConnector indicates no connector is registered under the requested type.
	ErrCodeUnknownConnector ErrorCode = "UNKNOWN_CONNECTOR"
	// ErrCodeConnectorFailed indicates a connector fetch or write failed.
	ErrCodeConnectorFailed ErrorCode = "CONNECTOR_FAILED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected engine failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectorFailed: true,
}

// IsRetryableCode reports whether an error code represents a transient
// failure worth retrying at the orchestration layer.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
