// Package archive backs up record files into the workspace archive
// directory.
//
// A backup is copied next to the record first, then moved into the archive.
// The copy in the workspace root is transient: once Backup returns it has
// either been moved into the archive or removed again.
package archive

import (
	"context"
	"fmt"
	"path"

	"github.com/jmgilman/studentfiles/audit"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
	"github.com/jmgilman/studentfiles/record"
)

const (
	// DefaultDir is the archive directory inside the workspace.
	DefaultDir = "Archive"
	// DefaultBackupPrefix starts every backup file name.
	DefaultBackupPrefix = "backup_"
)

// Entry describes a completed backup.
type Entry struct {
	// OriginalName is the record file that was backed up.
	OriginalName string
	// BackupName is the name of the copy.
	BackupName string
	// ArchivePath is the copy's path relative to the workspace.
	ArchivePath string
	// Listing is the sorted archive contents after the move.
	Listing []string
}

// Manager performs backups inside a workspace.
type Manager struct {
	fsys   core.FS
	audit  audit.Recorder
	logger *logging.Logger
	dir    string
	prefix string
}

// NewManager creates a Manager using DefaultDir and DefaultBackupPrefix
// unless dir or prefix are non-empty.
func NewManager(fsys core.FS, rec audit.Recorder, logger *logging.Logger, dir, prefix string) *Manager {
	if dir == "" {
		dir = DefaultDir
	}
	if prefix == "" {
		prefix = DefaultBackupPrefix
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Manager{fsys: fsys, audit: rec, logger: logger, dir: dir, prefix: prefix}
}

// Dir returns the archive directory name.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup copies f to "<prefix><name>", ensures the archive directory
// exists, moves the copy into it and lists the archive. A nil f is a no-op.
//
// The first failing step aborts the rest; the failure is written to the
// activity log and returned. On success a single entry naming f is logged.
// An archived backup with the same name is never replaced: the move fails
// with CodeArchiveFailed and the archive keeps the earlier copy.
func (m *Manager) Backup(ctx context.Context, f *record.File) (*Entry, error) {
	if f == nil {
		return nil, nil
	}

	backup := m.prefix + f.Name
	dest := path.Join(m.dir, backup)
	fields := map[string]interface{}{"file": f.Name, "backup": backup}

	if err := core.CopyFile(m.fsys, f.Name, backup); err != nil {
		m.discard(ctx, backup)
		return nil, m.fail(ctx, errors.WrapWithContext(err, errors.CodeBackupFailed, "failed to copy record file", fields))
	}

	if err := m.fsys.MkdirAll(m.dir, 0o755); err != nil {
		m.discard(ctx, backup)
		return nil, m.fail(ctx, errors.WrapWithContext(err, errors.CodeArchiveFailed, "failed to create archive directory", fields))
	}

	taken, err := m.fsys.Exists(dest)
	if err != nil {
		m.discard(ctx, backup)
		return nil, m.fail(ctx, errors.WrapWithContext(err, errors.CodeArchiveFailed, "failed to check archive destination", fields))
	}
	if taken {
		m.discard(ctx, backup)
		return nil, m.fail(ctx, errors.WithContextMap(
			errors.Newf(errors.CodeArchiveFailed, "destination path '%s' already exists", dest),
			fields,
		))
	}

	if err := m.fsys.Rename(backup, dest); err != nil {
		m.discard(ctx, backup)
		return nil, m.fail(ctx, errors.WrapWithContext(err, errors.CodeArchiveFailed, "failed to move backup into archive", fields))
	}

	listing, err := m.List()
	if err != nil {
		return nil, m.fail(ctx, err)
	}

	m.audit.Record(ctx, fmt.Sprintf("%s created and archived successfully.", f.Name))
	return &Entry{
		OriginalName: f.Name,
		BackupName:   backup,
		ArchivePath:  dest,
		Listing:      listing,
	}, nil
}

// List returns the sorted archive contents. A missing archive directory
// lists as empty.
func (m *Manager) List() ([]string, error) {
	exists, err := m.fsys.Exists(m.dir)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeListingFailed, "failed to check archive directory",
			map[string]interface{}{"dir": m.dir})
	}
	if !exists {
		return []string{}, nil
	}

	names, err := core.ListNames(m.fsys, m.dir)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeListingFailed, "failed to list archive directory",
			map[string]interface{}{"dir": m.dir})
	}
	return names, nil
}

// discard removes a transient backup left in the workspace root.
func (m *Manager) discard(ctx context.Context, backup string) {
	if err := m.fsys.Remove(backup); err != nil && !errors.Is(err, core.ErrNotExist) {
		m.logger.Warn(ctx, "Could not remove transient backup", "backup", backup, "error", err.Error())
	}
}

func (m *Manager) fail(ctx context.Context, err error) error {
	m.audit.Record(ctx, fmt.Sprintf("Error during backup and archive: %v", err))
	m.logger.Error(ctx, "Backup and archiving failed", logging.ErrorFields(err)...)
	return err
}
