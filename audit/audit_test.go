package audit

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/studentfiles/clock"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/billy"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
)

var at = time.Date(2024, 5, 17, 9, 30, 0, 0, time.Local)

// readOnlyFS refuses every open for writing.
type readOnlyFS struct {
	core.FS
}

func (readOnlyFS) OpenFile(name string, _ int, _ fs.FileMode) (core.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

// syncFS hands out files whose Sync is counted and may fail.
type syncFS struct {
	core.FS
	syncs *int
	err   error
}

type syncFile struct {
	core.File
	owner syncFS
}

func (f syncFile) Sync() error {
	*f.owner.syncs++
	return f.owner.err
}

func (s syncFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	f, err := s.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return syncFile{File: f, owner: s}, nil
}

func TestRecord_AppendsInOrder(t *testing.T) {
	fsys := billy.NewMemory()
	log := New(fsys, "", clock.Fixed(at), nil)

	log.Record(context.Background(), "first")
	log.Record(context.Background(), "second")

	data, err := fsys.ReadFile(DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, "[2024-05-17 09:30:00] first\n[2024-05-17 09:30:00] second\n", string(data))
}

func TestRecord_PreservesExistingContent(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("activity.txt", []byte("[2024-05-16 08:00:00] earlier\n"), 0o644))

	log := New(fsys, "activity.txt", clock.Fixed(at), nil)
	log.Record(context.Background(), "later")

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "earlier", entries[0].Message)
	assert.Equal(t, "later", entries[1].Message)
	assert.True(t, entries[0].Timestamp.Before(entries[1].Timestamp))
}

func TestRecord_FailureIsCritical(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.LogConfig{Level: logging.LogLevelDebug, Output: &buf})
	log := New(readOnlyFS{billy.NewMemory()}, "", clock.Fixed(at), logger)

	assert.NotPanics(t, func() {
		log.Record(context.Background(), "lost")
	})
	assert.Contains(t, buf.String(), "level=CRITICAL")
	assert.Contains(t, buf.String(), "Could not write to log file")
	assert.Contains(t, buf.String(), string(errors.CodeAuditWrite))
}

func TestAppend_ReturnsError(t *testing.T) {
	log := New(readOnlyFS{billy.NewMemory()}, "", clock.Fixed(at), nil)

	err := log.Append("lost")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAuditWrite, errors.GetCode(err))
	assert.Equal(t, errors.ClassificationCritical, errors.GetClassification(err))
}

func TestEntries_Missing(t *testing.T) {
	entries, err := New(billy.NewMemory(), "", nil, nil).Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntries_UnstampedLine(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile(DefaultFileName, []byte("hand edited\n[bad] stamp\n"), 0o644))

	entries, err := New(fsys, "", nil, nil).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, "hand edited", entries[0].Message)
	assert.Equal(t, "[bad] stamp", entries[1].Message)
}

func TestLogEntry_String(t *testing.T) {
	e := LogEntry{Timestamp: at, Message: "File 'x' was deleted by the user."}
	assert.Equal(t, "[2024-05-17 09:30:00] File 'x' was deleted by the user.", e.String())
}

func TestAppend_Syncs(t *testing.T) {
	var syncs int
	fsys := syncFS{FS: billy.NewMemory(), syncs: &syncs}
	log := New(fsys, "", clock.Fixed(at), nil)

	require.NoError(t, log.Append("first"))
	require.NoError(t, log.Append("second"))
	assert.Equal(t, 2, syncs)
}

func TestAppend_SyncFailure(t *testing.T) {
	var syncs int
	fsys := syncFS{FS: billy.NewMemory(), syncs: &syncs, err: fs.ErrPermission}
	log := New(fsys, "", clock.Fixed(at), nil)

	err := log.Append("first")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAuditWrite, errors.GetCode(err))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, 1, syncs)
}
