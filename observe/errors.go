package observe

import "errors"

// Errors returned by Config.Validate. Callers branch on these with
// errors.Is; the wrapped form carries the offending value.
var (
	// ErrMissingServiceName reports an empty Config.ServiceName.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct reports a Tracing.SamplePct outside the sampling bounds.
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter reports a tracing exporter name this build does not provide.
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")

	// ErrInvalidMetricsExporter reports a metrics exporter name this build does not provide.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogLevel reports a log level name ParseLogLevel does not accept.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// Sampling bounds accepted by Config.Validate.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// RedactedFields lists field keys whose values are replaced with [REDACTED]
// in log output. Connection strings and keys for the Azure backends travel
// through configuration, so the logger scrubs them unconditionally.
var RedactedFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
	"connection_string",
	"authorization",
}
