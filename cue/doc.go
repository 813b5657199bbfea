/*
Package cue provides CUE compilation, validation, decoding and encoding with
platform error handling.

The workspace uses CUE in two places: every roster record is unified with a
record schema before its average is computed, and the configuration file is
unified with a configuration schema before it is accepted. The effective
configuration is rendered back to YAML through the encoder.

# Components

  - Loader: compile CUE (or JSON, which is valid CUE) and encode Go values
  - Validate: unify a value with a schema and check it is concrete and valid
  - Decode: decode a CUE value into a Go struct
  - EncodeYAML / EncodeJSON: render a concrete value

# Example

	loader := cue.NewLoader()
	schema, err := loader.LoadBytes(ctx, []byte(`{name: string, scores: [...number]}`), "record.cue")
	if err != nil {
		return err
	}
	record, err := loader.LoadBytes(ctx, raw, "students.json")
	if err != nil {
		return err
	}
	if err := cue.Validate(ctx, schema, record); err != nil {
		// errors.GetCode(err) == errors.CodeCUEValidationFailed
	}

All errors returned are PlatformError values carrying the CUE error details in
their context.
*/
package cue
