// Package pipeline runs the workspace lifecycle end to end: initialize the
// workspace, create today's record, describe it, back it up into the
// archive and finally offer to delete a file.
//
// Stages are isolated. A failing stage is reported, recorded in the Summary
// and the run moves on; stages that depend on a missing record skip
// themselves. Only a workspace failure ends the run early.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmgilman/studentfiles/archive"
	"github.com/jmgilman/studentfiles/audit"
	"github.com/jmgilman/studentfiles/clock"
	"github.com/jmgilman/studentfiles/config"
	"github.com/jmgilman/studentfiles/curator"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
	"github.com/jmgilman/studentfiles/prompt"
	"github.com/jmgilman/studentfiles/record"
	"github.com/jmgilman/studentfiles/workspace"
)

// Stage names, in execution order.
const (
	StageWorkspace = "workspace"
	StageCreate    = "create"
	StageDescribe  = "describe"
	StageBackup    = "backup"
	StageManage    = "manage"
)

// Options configures a Pipeline.
type Options struct {
	// Config supplies names and counts. The zero value uses config.Default.
	Config config.Config
	// Host is the filesystem the workspace is created in.
	Host core.FS
	// Clock stamps record names and log entries. Defaults to clock.System.
	Clock clock.Clock
	// Input answers name and deletion prompts. Without one, every prompt
	// fails as exhausted.
	Input prompt.Source
	// Out receives the run's console report. Defaults to io.Discard.
	Out io.Writer
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *logging.Logger
}

// StageError is a non-fatal failure of a single stage.
type StageError struct {
	Stage string
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e StageError) Unwrap() error {
	return e.Err
}

// Summary records the outcome of every stage that ran.
type Summary struct {
	Workspace *workspace.Workspace
	Record    *record.File
	Info      *record.Info
	Archive   *archive.Entry
	Curation  *curator.Outcome
	Failures  []StageError
}

// Failed returns the error recorded for stage, or nil.
func (s *Summary) Failed(stage string) error {
	for _, f := range s.Failures {
		if f.Stage == stage {
			return f.Err
		}
	}
	return nil
}

// Pipeline runs the lifecycle stages.
type Pipeline struct {
	cfg    config.Config
	host   core.FS
	clock  clock.Clock
	input  prompt.Source
	out    io.Writer
	logger *logging.Logger
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		cfg:    opts.Config,
		host:   opts.Host,
		clock:  opts.Clock,
		input:  opts.Input,
		out:    opts.Out,
		logger: opts.Logger,
	}
	if p.cfg == (config.Config{}) {
		p.cfg = config.Default()
	}
	if p.clock == nil {
		p.clock = clock.System{}
	}
	if p.input == nil {
		p.input = prompt.NewSliceSource()
	}
	if p.out == nil {
		p.out = io.Discard
	}
	if p.logger == nil {
		p.logger = logging.NewNopLogger()
	}
	return p
}

// Run executes every stage in order. The returned error is non-nil only
// when the run could not continue: the workspace could not be initialized
// or ctx was cancelled between stages. Both are FATAL. Stage failures are
// in Summary.Failures.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	ws, err := workspace.Initialize(ctx, p.host, p.cfg.Workspace)
	if err != nil {
		p.printf("Error: Failed to create folder '%s'. %v\n", p.cfg.Workspace, err)
		p.logger.WithStage(StageWorkspace).Error(ctx, "Workspace unavailable", logging.ErrorFields(err)...)
		return sum, err
	}
	sum.Workspace = ws
	p.logger.WithStage(StageWorkspace).Debug(ctx, "Workspace ready",
		"root", ws.Root(), "fs", p.host.Type().String(), "created", ws.Created())
	if ws.Created() {
		p.printf("Folder '%s' created successfully.\n", ws.Name())
	} else {
		p.printf("Folder '%s' already exists.\n", ws.Name())
	}
	p.printf("Absolute path of '%s': %s\n", ws.Name(), ws.Root())

	log := audit.New(ws.FS(), p.cfg.LogFile, p.clock, p.logger.WithStage("audit"))
	store := record.NewStore(ws.FS(), log, p.clock,
		record.WithPrefix(p.cfg.RecordPrefix),
		record.WithCount(p.cfg.NamesPerRecord),
		record.WithLogger(p.logger.WithStage(StageCreate)),
	)
	archiver := archive.NewManager(ws.FS(), log, p.logger.WithStage(StageBackup), p.cfg.ArchiveDir, p.cfg.BackupPrefix)
	cur := curator.New(ws.FS(), log, p.logger.WithStage(StageManage), ws.Name())

	if err := p.checkpoint(ctx, StageCreate); err != nil {
		return sum, err
	}
	p.printf("\nEnter %d student names:\n", p.cfg.NamesPerRecord)
	sum.Record, err = store.Create(ctx, p.input)
	if err != nil {
		sum.fail(StageCreate, err)
		p.printf("Error: Could not create or write to the file. %v\n", err)
	} else {
		p.printf("\nSuccess: File '%s' created at %s.\n", sum.Record.Name, clock.Stamp(sum.Record.CreatedAt))
	}

	if err := p.checkpoint(ctx, StageDescribe); err != nil {
		return sum, err
	}
	sum.Info, err = store.Describe(ctx, sum.Record)
	switch {
	case err != nil:
		sum.fail(StageDescribe, err)
		p.printf("Error: Could not read file information. %v\n", err)
	case sum.Info != nil:
		p.printf("\n--- Contents of %s ---\n%s\n", sum.Info.Name, sum.Info.Contents)
		p.printf("File size: %d bytes\n", sum.Info.Size)
		p.printf("Last modified: %s\n", clock.Stamp(sum.Info.ModTime))
	}

	if err := p.checkpoint(ctx, StageBackup); err != nil {
		return sum, err
	}
	sum.Archive, err = archiver.Backup(ctx, sum.Record)
	switch {
	case err != nil:
		sum.fail(StageBackup, err)
		p.printf("Error: Backup and archiving failed. %v\n", err)
	case sum.Archive != nil:
		p.printf("\nBackup '%s' created.\n", sum.Archive.BackupName)
		p.printf("Backup moved to '%s'.\n", filepath.Join(ws.Root(), archiver.Dir()))
		p.printf("Files in %s folder: %s\n", archiver.Dir(), formatNames(sum.Archive.Listing))
	}

	if err := p.checkpoint(ctx, StageManage); err != nil {
		return sum, err
	}
	p.printf("\n")
	sum.Curation, err = cur.Run(ctx, p.input)
	if err != nil {
		sum.fail(StageManage, err)
		p.printf("Error: File management operation failed. %v\n", err)
	}
	if c := sum.Curation; c != nil {
		switch {
		case c.Deleted:
			p.printf("File '%s' deleted successfully.\n", c.Target)
		case c.NotFound:
			p.printf("Error: File not found.\n")
		}
		if c.Remaining != nil {
			p.printf("\nRemaining files in %s: %s\n", ws.Name(), formatNames(c.Remaining))
		}
	}

	if err := p.checkpoint(ctx, "finish"); err != nil {
		return sum, err
	}
	p.printf("\nProgram finished.\n")
	return sum, nil
}

func (s *Summary) fail(stage string, err error) {
	s.Failures = append(s.Failures, StageError{Stage: stage, Err: err})
}

// checkpoint stops the run if ctx has been cancelled before stage. The
// error is fatal so an interrupted run exits non-zero.
func (p *Pipeline) checkpoint(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		p.logger.WithStage(stage).Error(ctx, "Run cancelled", "error", err.Error())
		return errors.WrapWithContext(err, errors.CodeCancelled, "run cancelled", map[string]interface{}{"stage": stage})
	}
	return nil
}

func (p *Pipeline) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// formatNames renders a listing as ['a', 'b'].
func formatNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
