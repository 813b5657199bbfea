package cue

import (
	"github.com/jmgilman/studentfiles/errors"
)

func wrapBuildErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	return errors.WrapWithContext(err, errors.CodeCUEBuildFailed, message, ctx)
}

func wrapValidationErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	return errors.WrapWithContext(err, errors.CodeCUEValidationFailed, message, ctx)
}

func wrapDecodeError(err error, message string) errors.PlatformError {
	return errors.Wrap(err, errors.CodeCUEDecodeFailed, message)
}

func wrapDecodeErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	return errors.WrapWithContext(err, errors.CodeCUEDecodeFailed, message, ctx)
}

func wrapEncodeError(err error, message string) errors.PlatformError {
	return errors.Wrap(err, errors.CodeCUEEncodeFailed, message)
}

func wrapEncodeErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	return errors.WrapWithContext(err, errors.CodeCUEEncodeFailed, message, ctx)
}

// makeContext builds a context map from alternating keys and values.
// Example: makeContext("path", "/foo/bar", "line", 42).
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}
	if len(ctx) == 0 {
		return nil
	}
	return ctx
}

// contextOf returns the context of the outermost PlatformError in err's chain.
func contextOf(err error) map[string]interface{} {
	var platformErr errors.PlatformError
	if !errors.As(err, &platformErr) {
		return nil
	}
	return platformErr.Context()
}
