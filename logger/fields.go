package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldPipeline  = "pipeline"
	FieldRunID     = "run_id"
	FieldNode      = "node"
	FieldNodeType  = "node_type"
	FieldRows      = "rows"
	FieldDuration  = "duration_ms"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDryRun    = "dry_run"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("node done", logger.Fields("node", "agg-1", "rows", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
