package cue

import (
	"context"

	"cuelang.org/go/cue"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/jmgilman/studentfiles/errors"
)

// EncodeYAML encodes a concrete CUE value to YAML bytes.
// Returns CodeCUEEncodeFailed if the value is not concrete or cannot be encoded.
func EncodeYAML(ctx context.Context, value cue.Value) ([]byte, error) {
	if err := checkEncodable(ctx, value); err != nil {
		return nil, err
	}

	data, err := cueyaml.Encode(value)
	if err != nil {
		return nil, wrapEncodeError(err, "failed to encode CUE value to YAML")
	}
	return data, nil
}

// EncodeJSON encodes a concrete CUE value to JSON bytes.
// Returns CodeCUEEncodeFailed if the value is not concrete or cannot be encoded.
func EncodeJSON(ctx context.Context, value cue.Value) ([]byte, error) {
	if err := checkEncodable(ctx, value); err != nil {
		return nil, err
	}

	data, err := value.MarshalJSON()
	if err != nil {
		return nil, wrapEncodeError(err, "failed to encode CUE value to JSON")
	}
	return data, nil
}

func checkEncodable(ctx context.Context, value cue.Value) error {
	if ctx.Err() != nil {
		return wrapEncodeError(ctx.Err(), "context cancelled before encoding")
	}
	if err := value.Err(); err != nil {
		return wrapEncodeErrorWithContext(
			err,
			"CUE value contains errors and cannot be encoded",
			makeContext("error", err.Error()),
		)
	}
	if !value.IsConcrete() {
		return errors.New(errors.CodeCUEEncodeFailed, "CUE value is not concrete and cannot be encoded")
	}
	return nil
}
