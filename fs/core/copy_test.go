package core_test

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/studentfiles/fs/billy"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("records.txt", []byte("Ann\nBo\n"), 0o640))

	require.NoError(t, core.CopyFile(fsys, "records.txt", "backup_records.txt"))

	data, err := fsys.ReadFile("backup_records.txt")
	require.NoError(t, err)
	assert.Equal(t, "Ann\nBo\n", string(data))

	// The source is untouched.
	data, err = fsys.ReadFile("records.txt")
	require.NoError(t, err)
	assert.Equal(t, "Ann\nBo\n", string(data))
}

func TestCopyFile_Overwrites(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("src.txt", []byte("new"), 0o644))
	require.NoError(t, fsys.WriteFile("dst.txt", []byte("older and longer"), 0o644))

	require.NoError(t, core.CopyFile(fsys, "src.txt", "dst.txt"))

	data, err := fsys.ReadFile("dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCopyFile_MissingSource(t *testing.T) {
	fsys := billy.NewMemory()

	err := core.CopyFile(fsys, "missing.txt", "dst.txt")
	require.ErrorIs(t, err, fs.ErrNotExist)

	exists, err := fsys.Exists("dst.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyFile_Directory(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.MkdirAll("dir", 0o755))

	require.Error(t, core.CopyFile(fsys, "dir", "dst"))
}

func TestListNames(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("b.txt", nil, 0o644))
	require.NoError(t, fsys.WriteFile("a.txt", nil, 0o644))
	require.NoError(t, fsys.MkdirAll("Archive", 0o755))

	names, err := core.ListNames(fsys, ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"Archive", "a.txt", "b.txt"}, names)
}

func TestListNames_MissingDir(t *testing.T) {
	fsys := billy.NewMemory()

	_, err := core.ListNames(fsys, "nope")
	require.Error(t, err)
}

func TestFSType_String(t *testing.T) {
	assert.Equal(t, "local", core.FSTypeLocal.String())
	assert.Equal(t, "memory", core.FSTypeMemory.String())
	assert.Equal(t, "unknown", core.FSTypeUnknown.String())
	assert.Equal(t, "unknown", core.FSType(42).String())
}
