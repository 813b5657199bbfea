// Package workspace owns the directory every other component works in.
//
// A Workspace is created once by Initialize and handed to each component,
// which then addresses files by plain names relative to it.
package workspace

import (
	"context"
	"path/filepath"

	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
)

// DefaultName is the workspace directory used when none is configured.
const DefaultName = "StudentFiles"

// Workspace is an initialized workspace directory.
type Workspace struct {
	name    string
	root    string
	created bool
	fsys    core.FS
}

// Initialize ensures the directory name exists in host and returns a
// Workspace scoped to it. Relative names resolve against the current
// working directory. Creating an existing directory is a no-op.
//
// Every failure is FATAL: nothing downstream can run without a workspace.
func Initialize(ctx context.Context, host core.FS, name string) (*Workspace, error) {
	if name == "" {
		name = DefaultName
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err, "workspace initialization cancelled", name)
	}

	root, err := filepath.Abs(name)
	if err != nil {
		return nil, unavailable(err, "failed to resolve workspace path", name)
	}

	created := false
	info, err := host.Stat(root)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, errors.WithContext(
				errors.New(errors.CodeWorkspaceUnavailable, "workspace path exists and is not a directory"),
				"path", root,
			)
		}
	case errors.Is(err, core.ErrNotExist):
		if err := host.MkdirAll(root, 0o755); err != nil {
			return nil, unavailable(err, "failed to create workspace directory", root)
		}
		created = true
	default:
		return nil, unavailable(err, "failed to inspect workspace directory", root)
	}

	scoped, err := host.Chroot(root)
	if err != nil {
		return nil, unavailable(err, "failed to open workspace directory", root)
	}

	return &Workspace{name: name, root: root, created: created, fsys: scoped}, nil
}

// Name returns the workspace name as configured.
func (w *Workspace) Name() string {
	return w.name
}

// Root returns the absolute path of the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Created reports whether Initialize created the directory.
func (w *Workspace) Created() bool {
	return w.created
}

// FS returns a filesystem scoped to the workspace directory.
func (w *Workspace) FS() core.FS {
	return w.fsys
}

// List returns the sorted names of everything in the workspace root.
func (w *Workspace) List() ([]string, error) {
	return w.ListDir(".")
}

// ListDir returns the sorted names of everything in dir, relative to the
// workspace root.
func (w *Workspace) ListDir(dir string) ([]string, error) {
	names, err := core.ListNames(w.fsys, dir)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeListingFailed, "failed to list directory",
			map[string]interface{}{"dir": dir})
	}
	return names, nil
}

func unavailable(err error, msg, path string) error {
	return errors.WithClassification(
		errors.WrapWithContext(err, errors.CodeWorkspaceUnavailable, msg, map[string]interface{}{"path": path}),
		errors.ClassificationFatal,
	)
}
