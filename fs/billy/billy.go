package billy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/studentfiles/fs/core"
)

// LocalFS wraps billy's osfs for local filesystem access.
type LocalFS struct {
	adapter
}

// MemoryFS wraps billy's memfs for in-memory filesystem access.
type MemoryFS struct {
	adapter
}

// NewLocal creates a go-billy-backed local filesystem rooted at "/".
func NewLocal() *LocalFS {
	return NewLocalAt("/")
}

// NewLocalAt creates a local filesystem rooted at dir.
func NewLocalAt(dir string) *LocalFS {
	return &LocalFS{adapter{bfs: osfs.New(dir)}}
}

// NewMemory creates an empty go-billy-backed in-memory filesystem.
func NewMemory() *MemoryFS {
	return &MemoryFS{adapter{bfs: memfs.New()}}
}

// Chroot returns a filesystem scoped to the given directory.
func (lfs *LocalFS) Chroot(dir string) (core.FS, error) {
	bfs, err := lfs.chroot(dir)
	if err != nil {
		return nil, err
	}
	return &LocalFS{adapter{bfs: bfs}}, nil
}

// Type returns FSTypeLocal.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Chroot returns a filesystem scoped to the given directory.
func (mfs *MemoryFS) Chroot(dir string) (core.FS, error) {
	bfs, err := mfs.chroot(dir)
	if err != nil {
		return nil, err
	}
	return &MemoryFS{adapter{bfs: bfs}}, nil
}

// Type returns FSTypeMemory.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// adapter implements everything but Chroot and Type on top of a
// billy.Filesystem.
type adapter struct {
	bfs billy.Filesystem
}

// normalize converts paths to use forward slashes consistently.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

func (a *adapter) wrap(f billy.File, name string) *File {
	return &File{file: f, fs: a.bfs, name: name}
}

// Open opens the named file for reading.
func (a *adapter) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := a.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return a.wrap(f, name), nil
}

// Stat returns file metadata for the named file.
func (a *adapter) Stat(name string) (fs.FileInfo, error) {
	return a.bfs.Stat(normalize(name))
}

// ReadDir reads the named directory and returns its entries sorted by name.
func (a *adapter) ReadDir(name string) ([]fs.DirEntry, error) {
	// Billy returns []fs.FileInfo; convert to []fs.DirEntry.
	infos, err := a.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (a *adapter) ReadFile(name string) ([]byte, error) {
	f, err := a.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (a *adapter) Exists(name string) (bool, error) {
	_, err := a.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (a *adapter) Create(name string) (core.File, error) {
	name = normalize(name)
	f, err := a.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return a.wrap(f, name), nil
}

// OpenFile opens a file with the specified flags and permissions.
func (a *adapter) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	f, err := a.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return a.wrap(f, name), nil
}

// WriteFile writes data to the named file, creating or truncating it.
func (a *adapter) WriteFile(name string, data []byte, perm fs.FileMode) (err error) {
	f, err := a.bfs.OpenFile(normalize(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}

// Mkdir creates a single directory. The parent must exist.
func (a *adapter) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := a.bfs.Stat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	parent := filepath.Dir(name)
	if parent != "." && parent != "/" {
		if _, err := a.bfs.Stat(parent); err != nil {
			return err
		}
	}
	// The parent is known to exist, so MkdirAll creates exactly one level.
	return a.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (a *adapter) MkdirAll(path string, perm fs.FileMode) error {
	return a.bfs.MkdirAll(normalize(path), perm)
}

// Remove removes the named file or empty directory.
func (a *adapter) Remove(name string) error {
	return a.bfs.Remove(normalize(name))
}

// Rename moves oldpath to newpath.
func (a *adapter) Rename(oldpath, newpath string) error {
	return a.bfs.Rename(normalize(oldpath), normalize(newpath))
}

func (a *adapter) chroot(dir string) (billy.Filesystem, error) {
	dir = normalize(dir)
	info, err := a.bfs.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "chroot", Path: dir, Err: fs.ErrInvalid}
	}
	return a.bfs.Chroot(dir)
}

// Compile-time interface checks.
var (
	_ core.FS = (*LocalFS)(nil)
	_ core.FS = (*MemoryFS)(nil)
)
