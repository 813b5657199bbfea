package cue

import (
	"context"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader compiles CUE sources within a single CUE context.
// Values from different Loaders must not be unified with each other.
type Loader struct {
	cueCtx *cue.Context
}

// NewLoader creates a Loader with its own CUE context.
func NewLoader() *Loader {
	return &Loader{cueCtx: cuecontext.New()}
}

// Context returns the underlying CUE context.
func (l *Loader) Context() *cue.Context {
	return l.cueCtx
}

// LoadBytes compiles CUE source. JSON documents are valid CUE and can be
// loaded the same way. filename is used only in error messages.
//
// Returns CodeCUEBuildFailed on compilation errors.
func (l *Loader) LoadBytes(ctx context.Context, source []byte, filename string) (cue.Value, error) {
	if filename == "" {
		filename = "<input>"
	}
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapBuildErrorWithContext(err, "context cancelled", makeContext("filename", filename))
	}

	val := l.cueCtx.CompileBytes(source, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapBuildErrorWithContext(
			err,
			"failed to compile CUE source",
			makeContext("filename", filename, "source_size", len(source)),
		)
	}
	return val, nil
}

// FromGo converts a Go value into a CUE value. Struct fields follow their
// json tags.
//
// Returns CodeCUEBuildFailed if the value cannot be represented.
func (l *Loader) FromGo(ctx context.Context, v interface{}) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapBuildErrorWithContext(err, "context cancelled", nil)
	}

	val := l.cueCtx.Encode(v)
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapBuildErrorWithContext(err, "failed to encode Go value as CUE", nil)
	}
	return val, nil
}
