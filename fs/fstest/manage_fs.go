package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/studentfiles/fs/core"
)

// TestManageFS tests Remove and Rename.
func TestManageFS(t *testing.T, filesystem core.FS) {
	t.Run("RemoveFile", func(t *testing.T) {
		if err := filesystem.WriteFile("gone.txt", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(gone.txt): setup failed: %v", err)
		}
		if err := filesystem.Remove("gone.txt"); err != nil {
			t.Fatalf("Remove(gone.txt): got error %v, want nil", err)
		}
		if _, err := filesystem.Stat("gone.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(gone.txt) after Remove: got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("RemoveNotExist", func(t *testing.T) {
		err := filesystem.Remove("never-existed.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(never-existed.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("RenameIntoSubdirectory", func(t *testing.T) {
		if err := filesystem.WriteFile("backup.txt", []byte("payload"), 0o644); err != nil {
			t.Fatalf("WriteFile(backup.txt): setup failed: %v", err)
		}
		if err := filesystem.MkdirAll("Archive", 0o755); err != nil {
			t.Fatalf("MkdirAll(Archive): setup failed: %v", err)
		}
		if err := filesystem.Rename("backup.txt", "Archive/backup.txt"); err != nil {
			t.Fatalf("Rename: got error %v, want nil", err)
		}
		if ok, _ := filesystem.Exists("backup.txt"); ok {
			t.Errorf("Exists(backup.txt) after Rename = true, want false")
		}
		data, err := filesystem.ReadFile("Archive/backup.txt")
		if err != nil {
			t.Fatalf("ReadFile(Archive/backup.txt): got error %v, want nil", err)
		}
		if string(data) != "payload" {
			t.Errorf("ReadFile(Archive/backup.txt) = %q, want %q", data, "payload")
		}
	})
}

// TestChrootFS tests that Chroot scopes paths to a directory.
func TestChrootFS(t *testing.T, filesystem core.FS) {
	if err := filesystem.MkdirAll("root/sub", 0o755); err != nil {
		t.Fatalf("MkdirAll(root/sub): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("root/file.txt", []byte("scoped"), 0o644); err != nil {
		t.Fatalf("WriteFile(root/file.txt): setup failed: %v", err)
	}

	scoped, err := filesystem.Chroot("root")
	if err != nil {
		t.Fatalf("Chroot(root): got error %v, want nil", err)
	}

	data, err := scoped.ReadFile("file.txt")
	if err != nil {
		t.Fatalf("ReadFile(file.txt) in chroot: got error %v, want nil", err)
	}
	if string(data) != "scoped" {
		t.Errorf("ReadFile(file.txt) in chroot = %q, want %q", data, "scoped")
	}

	if err := scoped.WriteFile("new.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile(new.txt) in chroot: got error %v, want nil", err)
	}
	if ok, _ := filesystem.Exists("root/new.txt"); !ok {
		t.Errorf("Exists(root/new.txt) after chroot write = false, want true")
	}

	if _, err := filesystem.Chroot("root/file.txt"); err == nil {
		t.Errorf("Chroot(root/file.txt): got nil error, want error for non-directory")
	}
	if _, err := filesystem.Chroot("missing"); err == nil {
		t.Errorf("Chroot(missing): got nil error, want error")
	}
}
