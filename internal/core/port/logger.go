package port

// Fields carries structured data into a log record.
type Fields map[string]interface{}

// LoggerPort is the logging contract. It keeps the core independent of the
// concrete logger implementation.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	// Error records a message together with the causing error.
	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields returns a logger with the fields pre-attached. Used to add
	// context such as trace_id or component.
	WithFields(fields Fields) LoggerPort
}
