package curator

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/studentfiles/audit"
	"github.com/jmgilman/studentfiles/clock"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/billy"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/prompt"
)

var now = time.Date(2024, 5, 17, 16, 0, 0, 0, time.Local)

// stuckFS refuses to remove anything.
type stuckFS struct {
	core.FS
}

func (stuckFS) Remove(name string) error {
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
}

func setup(t *testing.T, fsys core.FS) (*Curator, *audit.Log) {
	t.Helper()
	log := audit.New(fsys, "", clock.Fixed(now), nil)
	// Start with a log so listings are stable across the attempt.
	log.Record(context.Background(), "setup")
	require.NoError(t, fsys.WriteFile("records_2024-05-17.txt", []byte("Ann\n"), 0o644))
	return New(fsys, log, nil, "StudentFiles"), log
}

func messages(t *testing.T, log *audit.Log) []string {
	t.Helper()
	entries, err := log.Entries()
	require.NoError(t, err)
	var out []string
	for _, e := range entries[1:] {
		out = append(out, e.Message)
	}
	return out
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"Yes", true},
		{"  YES \n", true},
		{"y", false},
		{"no", false},
		{"", false},
		{"yes please", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAffirmative(tt.in), "input %q", tt.in)
	}
}

func TestQuestion(t *testing.T) {
	c := New(billy.NewMemory(), nil, nil, "StudentFiles")
	assert.Equal(t, "Do you want to delete a file from the StudentFiles folder? (Yes/No): ", c.Question())
}

func TestManage_Deletes(t *testing.T) {
	fsys := billy.NewMemory()
	c, log := setup(t, fsys)

	out, err := c.Manage(context.Background(), " Yes ", " records_2024-05-17.txt ")
	require.NoError(t, err)

	assert.True(t, out.Requested)
	assert.True(t, out.Deleted)
	assert.False(t, out.NotFound)
	assert.Equal(t, "records_2024-05-17.txt", out.Target)
	assert.Equal(t, []string{audit.DefaultFileName}, out.Remaining)
	assert.Equal(t, []string{"File 'records_2024-05-17.txt' was deleted by the user."}, messages(t, log))
}

func TestManage_NotFound(t *testing.T) {
	fsys := billy.NewMemory()
	c, log := setup(t, fsys)

	before, err := core.ListNames(fsys, ".")
	require.NoError(t, err)

	out, err := c.Manage(context.Background(), "yes", "ghost.txt")
	require.NoError(t, err)

	assert.True(t, out.NotFound)
	assert.False(t, out.Deleted)
	assert.Equal(t, before, out.Remaining)
	assert.Equal(t, []string{"User attempted to delete non-existent file 'ghost.txt'."}, messages(t, log))
}

func TestManage_Declined(t *testing.T) {
	fsys := billy.NewMemory()
	c, log := setup(t, fsys)

	out, err := c.Manage(context.Background(), "no", "records_2024-05-17.txt")
	require.NoError(t, err)

	assert.False(t, out.Requested)
	assert.False(t, out.Deleted)
	assert.Equal(t, []string{audit.DefaultFileName, "records_2024-05-17.txt"}, out.Remaining)
	assert.Empty(t, messages(t, log))
}

func TestManage_RejectsPaths(t *testing.T) {
	for _, target := range []string{"", "..", "Archive/backup.txt", `..\x`} {
		t.Run(target, func(t *testing.T) {
			fsys := billy.NewMemory()
			c, log := setup(t, fsys)

			out, err := c.Manage(context.Background(), "yes", target)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
			assert.False(t, errors.IsFatal(err))
			assert.NotEmpty(t, out.Remaining)

			msgs := messages(t, log)
			require.Len(t, msgs, 1)
			assert.Contains(t, msgs[0], "Error during file deletion: ")
		})
	}
}

func TestManage_RefusesDirectory(t *testing.T) {
	fsys := billy.NewMemory()
	c, _ := setup(t, fsys)
	require.NoError(t, fsys.MkdirAll("Archive", 0o755))

	_, err := c.Manage(context.Background(), "yes", "Archive")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDeleteFailed, errors.GetCode(err))

	exists, err := fsys.Exists("Archive")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestManage_RemoveFailure(t *testing.T) {
	fsys := stuckFS{billy.NewMemory()}
	c, log := setup(t, fsys)

	out, err := c.Manage(context.Background(), "yes", "records_2024-05-17.txt")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDeleteFailed, errors.GetCode(err))
	assert.Equal(t, errors.ClassificationStageAbort, errors.GetClassification(err))
	assert.False(t, out.Deleted)
	assert.Contains(t, out.Remaining, "records_2024-05-17.txt")

	msgs := messages(t, log)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Error during file deletion: ")
}

func TestRun(t *testing.T) {
	fsys := billy.NewMemory()
	c, _ := setup(t, fsys)

	out, err := c.Run(context.Background(), prompt.NewSliceSource("YES", "records_2024-05-17.txt"))
	require.NoError(t, err)
	assert.True(t, out.Deleted)
}

func TestRun_DeclineAsksOnce(t *testing.T) {
	fsys := billy.NewMemory()
	c, _ := setup(t, fsys)
	src := prompt.NewSliceSource("No", "records_2024-05-17.txt")

	out, err := c.Run(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, out.Requested)
	assert.Equal(t, 1, src.Remaining())
}

func TestRun_InputFailure(t *testing.T) {
	fsys := billy.NewMemory()
	c, log := setup(t, fsys)

	out, err := c.Run(context.Background(), prompt.NewSliceSource("yes"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputUnavailable, errors.GetCode(err))
	assert.Equal(t, []string{audit.DefaultFileName, "records_2024-05-17.txt"}, out.Remaining)

	msgs := messages(t, log)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Error during file deletion: ")
}
