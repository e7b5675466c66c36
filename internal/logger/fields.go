package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields propagated through the call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldTaskID is the listing task ID
	FieldTaskID = "task_id"

	// FieldProductID is the product ID a task belongs to
	FieldProductID = "product_id"

	// FieldChannel is the channel backend name
	FieldChannel = "channel"

	// FieldStep is the executor step name
	FieldStep = "step"
)

// Standard metric fields used for aggregation and alerting.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
