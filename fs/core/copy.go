package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
)

// CopyFile copies the contents of src to dst within the same filesystem,
// creating or truncating dst. The permission bits of src are carried over.
//
// Both handles are closed before CopyFile returns, on every path. If the copy
// fails after dst was opened, dst may be left partially written; callers that
// need all-or-nothing semantics should remove it.
//
// Example:
//
//	if err := core.CopyFile(fsys, "records_2024-01-02.txt", "backup_records_2024-01-02.txt"); err != nil {
//	    return err
//	}
func CopyFile(fsys FS, src, dst string) (err error) {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: errors.New("is a directory")}
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n, err := io.Copy(out, in)
	if err != nil {
		return err
	}
	if n != info.Size() {
		return fmt.Errorf("copy %s: short copy: wrote %d of %d bytes", src, n, info.Size())
	}
	return nil
}

// ListNames returns the names of the entries in dir, sorted lexically.
// Both files and subdirectories are included.
func ListNames(fsys ReadFS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
