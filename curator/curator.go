// Package curator handles the optional deletion of a workspace file at the
// end of a run.
package curator

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmgilman/studentfiles/audit"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
	"github.com/jmgilman/studentfiles/prompt"
)

// IsAffirmative reports whether answer is "yes", ignoring case and
// surrounding whitespace. Anything else, including "y", is a no.
func IsAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}

// Outcome describes what Manage did.
type Outcome struct {
	// Requested is true when the decision was affirmative.
	Requested bool
	// Target is the trimmed file name the user asked to delete.
	Target string
	// Deleted is true when Target was removed.
	Deleted bool
	// NotFound is true when Target did not exist.
	NotFound bool
	// Remaining is the sorted workspace listing after the attempt.
	Remaining []string
}

// Curator deletes files from a workspace on request.
type Curator struct {
	fsys   core.FS
	audit  audit.Recorder
	logger *logging.Logger
	folder string
}

// New creates a Curator. folder is the workspace name shown in prompts.
func New(fsys core.FS, rec audit.Recorder, logger *logging.Logger, folder string) *Curator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Curator{fsys: fsys, audit: rec, logger: logger, folder: folder}
}

// Question returns the yes/no prompt shown before a deletion.
func (c *Curator) Question() string {
	return fmt.Sprintf("Do you want to delete a file from the %s folder? (Yes/No): ", c.folder)
}

// Run asks src whether to delete a file and, if so, which one, then calls
// Manage. A failure to read input is logged like any other deletion
// failure; the workspace is still listed.
func (c *Curator) Run(ctx context.Context, src prompt.Source) (*Outcome, error) {
	decision, err := src.Next(ctx, c.Question())
	if err != nil {
		return c.abort(ctx, err)
	}

	var target string
	if IsAffirmative(decision) {
		target, err = src.Next(ctx, "Enter the name of the file to delete: ")
		if err != nil {
			return c.abort(ctx, err)
		}
	}

	return c.Manage(ctx, decision, target)
}

// Manage deletes target from the workspace root when decision is
// affirmative, then lists what remains.
//
// A missing target is not an error: it is reported through Outcome.NotFound
// and logged as an attempted deletion. Unexpected failures are logged and
// returned; the listing is still attempted so the caller can report it.
func (c *Curator) Manage(ctx context.Context, decision, target string) (*Outcome, error) {
	out := &Outcome{Requested: IsAffirmative(decision), Target: strings.TrimSpace(target)}

	var opErr error
	if out.Requested {
		opErr = c.remove(ctx, out)
		if opErr != nil {
			c.failed(ctx, opErr)
		}
	}

	remaining, err := core.ListNames(c.fsys, ".")
	if err != nil {
		err = errors.Wrap(err, errors.CodeListingFailed, "failed to list workspace")
		c.failed(ctx, err)
		if opErr == nil {
			opErr = err
		}
		return out, opErr
	}
	out.Remaining = remaining

	return out, opErr
}

func (c *Curator) remove(ctx context.Context, out *Outcome) error {
	name := out.Target
	fields := map[string]interface{}{"file": name}

	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.WithContext(
			errors.New(errors.CodeInvalidInput, "file name must name a file in the workspace root"),
			"file", name,
		)
	}

	info, err := c.fsys.Stat(name)
	if errors.Is(err, core.ErrNotExist) {
		out.NotFound = true
		c.logger.Info(ctx, "File not found", "file", name, "classification", string(errors.ClassificationInformational))
		c.audit.Record(ctx, fmt.Sprintf("User attempted to delete non-existent file '%s'.", name))
		return nil
	}
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeDeleteFailed, "failed to inspect file", fields)
	}
	if info.IsDir() {
		return errors.WithContext(errors.New(errors.CodeDeleteFailed, "refusing to delete a directory"), "file", name)
	}

	if err := c.fsys.Remove(name); err != nil {
		return errors.WrapWithContext(err, errors.CodeDeleteFailed, "failed to delete file", fields)
	}

	out.Deleted = true
	c.audit.Record(ctx, fmt.Sprintf("File '%s' was deleted by the user.", name))
	return nil
}

func (c *Curator) abort(ctx context.Context, err error) (*Outcome, error) {
	err = errors.Wrap(err, errors.CodeInputUnavailable, "failed to read deletion choice")
	c.failed(ctx, err)

	out := &Outcome{}
	if remaining, lerr := core.ListNames(c.fsys, "."); lerr == nil {
		out.Remaining = remaining
	}
	return out, err
}

func (c *Curator) failed(ctx context.Context, err error) {
	c.audit.Record(ctx, fmt.Sprintf("Error during file deletion: %v", err))
	c.logger.Error(ctx, "File management operation failed", logging.ErrorFields(err)...)
}
