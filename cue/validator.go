package cue

import (
	"context"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// Concrete requires all values to be concrete (fully specified).
	Concrete bool

	// Final resolves default values before validation.
	Final bool

	// All reports all errors instead of stopping at the first one.
	All bool
}

// DefaultValidationOptions requires concrete values, finalizes defaults and
// collects every error.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		Concrete: true,
		Final:    true,
		All:      true,
	}
}

// ValidationIssue represents a single validation error.
type ValidationIssue struct {
	// Path is the field path where the error occurred (e.g., ["scores", "0"]).
	Path []string

	// Message is the human-readable error message.
	Message string

	// Position is the source position if available.
	Position token.Pos
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return strings.Join(i.Path, ".") + ": " + i.Message
}

// Validate unifies data with schema and validates the result using
// DefaultValidationOptions.
func Validate(ctx context.Context, schema cue.Value, data cue.Value) error {
	return ValidateWithOptions(ctx, schema, data, DefaultValidationOptions())
}

// ValidateWithOptions unifies data with schema and validates the result.
//
// Returns CodeCUEValidationFailed on failure. The error context carries
// "issues" ([]ValidationIssue) and "details" (the CUE error text).
func ValidateWithOptions(ctx context.Context, schema cue.Value, data cue.Value, opts ValidationOptions) error {
	if err := ctx.Err(); err != nil {
		return wrapValidationErrorWithContext(err, "context cancelled", nil)
	}

	if err := schema.Err(); err != nil {
		return wrapValidationErrorWithContext(err, "schema is invalid", issueContext(err))
	}
	if err := data.Err(); err != nil {
		return wrapValidationErrorWithContext(err, "data is invalid", issueContext(err))
	}

	var cueOpts []cue.Option
	if opts.Concrete {
		cueOpts = append(cueOpts, cue.Concrete(true))
	}
	if opts.Final {
		cueOpts = append(cueOpts, cue.Final())
	}
	if opts.All {
		cueOpts = append(cueOpts, cue.All())
	}

	// Validate directly rather than checking unified.Err() first, so All can
	// collect every error.
	unified := schema.Unify(data)
	if err := unified.Validate(cueOpts...); err != nil {
		return wrapValidationErrorWithContext(err, "validation failed", issueContext(err))
	}
	return nil
}

// Issues extracts the validation issues attached to an error returned by
// ValidateWithOptions. Returns nil for any other error.
func Issues(err error) []ValidationIssue {
	ctx := contextOf(err)
	if ctx == nil {
		return nil
	}
	issues, _ := ctx["issues"].([]ValidationIssue)
	return issues
}

func issueContext(err error) map[string]interface{} {
	return makeContext(
		"details", cueerrors.Details(err, nil),
		"issues", extractValidationIssues(err),
	)
}

// extractValidationIssues converts a CUE error into structured issues.
func extractValidationIssues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}

	var issues []ValidationIssue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()

		var pos token.Pos
		if positions := e.InputPositions(); len(positions) > 0 {
			pos = positions[0]
		}

		issues = append(issues, ValidationIssue{
			Path:     e.Path(),
			Message:  fmt.Sprintf(format, args...),
			Position: pos,
		})
	}
	return issues
}
