package cue

import (
	"context"
	"fmt"
	"reflect"

	"cuelang.org/go/cue"
	"github.com/jmgilman/studentfiles/errors"
)

// Decode decodes a CUE value into a Go struct pointer.
// Field names follow json tags.
//
// Returns CodeCUEDecodeFailed if target is not a non-nil pointer to a struct,
// if the value contains errors, or if decoding fails.
func Decode(ctx context.Context, value cue.Value, target interface{}) error {
	if ctx.Err() != nil {
		return wrapDecodeError(ctx.Err(), "context cancelled before decoding")
	}

	if target == nil {
		return errors.New(errors.CodeCUEDecodeFailed, "decode target cannot be nil")
	}

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr {
		return errors.Newf(errors.CodeCUEDecodeFailed,
			"decode target must be a pointer to a struct, got %s", targetValue.Kind())
	}
	if targetValue.IsNil() {
		return errors.New(errors.CodeCUEDecodeFailed, "decode target pointer cannot be nil")
	}
	targetElem := targetValue.Elem()
	if targetElem.Kind() != reflect.Struct {
		return errors.Newf(errors.CodeCUEDecodeFailed,
			"decode target must be a pointer to a struct, got pointer to %s", targetElem.Kind())
	}

	if err := value.Err(); err != nil {
		return wrapDecodeErrorWithContext(
			err,
			"CUE value contains errors and cannot be decoded",
			makeContext("error", err.Error()),
		)
	}

	if err := value.Decode(target); err != nil {
		return wrapDecodeErrorWithContext(
			err,
			"failed to decode CUE value to Go struct",
			makeContext(
				"target_type", fmt.Sprintf("%T", target),
				"value_kind", value.Kind().String(),
			),
		)
	}
	return nil
}
