package fstest

import (
	"testing"

	"github.com/jmgilman/studentfiles/fs/core"
)

// TestReadFS tests Stat, ReadDir, ReadFile and Exists.
func TestReadFS(t *testing.T, filesystem core.FS) {
	if err := filesystem.MkdirAll("read", 0o755); err != nil {
		t.Fatalf("MkdirAll(read): setup failed: %v", err)
	}
	for _, name := range []string{"read/c.txt", "read/a.txt", "read/b.txt"} {
		if err := filesystem.WriteFile(name, []byte(name), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
		}
	}

	t.Run("ReadDirSorted", func(t *testing.T) {
		entries, err := filesystem.ReadDir("read")
		if err != nil {
			t.Fatalf("ReadDir(read): got error %v, want nil", err)
		}
		want := []string{"a.txt", "b.txt", "c.txt"}
		if len(entries) != len(want) {
			t.Fatalf("ReadDir(read): got %d entries, want %d", len(entries), len(want))
		}
		for i, entry := range entries {
			if entry.Name() != want[i] {
				t.Errorf("ReadDir(read)[%d] = %q, want %q", i, entry.Name(), want[i])
			}
		}
	})

	t.Run("StatSize", func(t *testing.T) {
		info, err := filesystem.Stat("read/a.txt")
		if err != nil {
			t.Fatalf("Stat(read/a.txt): got error %v, want nil", err)
		}
		if info.Size() != int64(len("read/a.txt")) {
			t.Errorf("Stat(read/a.txt).Size() = %d, want %d", info.Size(), len("read/a.txt"))
		}
		if info.ModTime().IsZero() {
			t.Errorf("Stat(read/a.txt).ModTime() is zero")
		}
	})

	t.Run("ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile("read/b.txt")
		if err != nil {
			t.Fatalf("ReadFile(read/b.txt): got error %v, want nil", err)
		}
		if string(data) != "read/b.txt" {
			t.Errorf("ReadFile(read/b.txt) = %q, want %q", data, "read/b.txt")
		}
	})

	t.Run("Exists", func(t *testing.T) {
		if ok, err := filesystem.Exists("read/a.txt"); err != nil || !ok {
			t.Errorf("Exists(read/a.txt) = %v, %v; want true, nil", ok, err)
		}
		if ok, err := filesystem.Exists("read"); err != nil || !ok {
			t.Errorf("Exists(read) = %v, %v; want true, nil", ok, err)
		}
		if ok, err := filesystem.Exists("read/missing.txt"); err != nil || ok {
			t.Errorf("Exists(read/missing.txt) = %v, %v; want false, nil", ok, err)
		}
	})
}
