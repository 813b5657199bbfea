package errors

// PlatformError extends the standard error interface with structured information.
//
// It carries a code for categorization, a classification that decides how far
// the failure may travel, contextual metadata, and the wrapped cause for
// errors.Is and errors.As.
type PlatformError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns the severity of the error.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}
