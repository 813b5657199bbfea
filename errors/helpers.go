package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from the outermost PlatformError in err's chain.
// Returns CodeUnknown if err is nil or carries no PlatformError.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}
	return CodeUnknown
}

// GetClassification extracts the ErrorClassification from err's chain.
// Plain errors abort their stage. A nil error is informational.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationInformational
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}
	return ClassificationStageAbort
}

// IsFatal returns true if err must terminate the process.
func IsFatal(err error) bool {
	return GetClassification(err).IsFatal()
}

// ExitCode maps an error to a process exit status: 1 for fatal errors,
// 0 for everything else including nil.
func ExitCode(err error) int {
	if IsFatal(err) {
		return 1
	}
	return 0
}
