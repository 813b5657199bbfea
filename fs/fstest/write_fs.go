package fstest

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/jmgilman/studentfiles/fs/core"
)

// TestWriteFS tests truncating writes, appending writes and Mkdir.
func TestWriteFS(t *testing.T, filesystem core.FS) {
	t.Run("WriteFileTruncates", func(t *testing.T) {
		if err := filesystem.WriteFile("trunc.txt", []byte("a much longer first version"), 0o644); err != nil {
			t.Fatalf("WriteFile(trunc.txt): got error %v, want nil", err)
		}
		if err := filesystem.WriteFile("trunc.txt", []byte("short"), 0o644); err != nil {
			t.Fatalf("WriteFile(trunc.txt) second: got error %v, want nil", err)
		}
		data, err := filesystem.ReadFile("trunc.txt")
		if err != nil {
			t.Fatalf("ReadFile(trunc.txt): got error %v, want nil", err)
		}
		if string(data) != "short" {
			t.Errorf("ReadFile(trunc.txt) = %q, want %q", data, "short")
		}
	})

	t.Run("CreateTruncates", func(t *testing.T) {
		if err := filesystem.WriteFile("create.txt", []byte("old content"), 0o644); err != nil {
			t.Fatalf("WriteFile(create.txt): setup failed: %v", err)
		}
		f, err := filesystem.Create("create.txt")
		if err != nil {
			t.Fatalf("Create(create.txt): got error %v, want nil", err)
		}
		if _, err := f.Write([]byte("new")); err != nil {
			t.Fatalf("Write: got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close: got error %v, want nil", err)
		}
		data, _ := filesystem.ReadFile("create.txt")
		if string(data) != "new" {
			t.Errorf("ReadFile(create.txt) = %q, want %q", data, "new")
		}
	})

	t.Run("AppendPreservesContent", func(t *testing.T) {
		for _, line := range []string{"one\n", "two\n"} {
			f, err := filesystem.OpenFile("append.txt", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
			if err != nil {
				t.Fatalf("OpenFile(append.txt): got error %v, want nil", err)
			}
			if _, err := f.Write([]byte(line)); err != nil {
				t.Fatalf("Write: got error %v, want nil", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close: got error %v, want nil", err)
			}
		}
		data, err := filesystem.ReadFile("append.txt")
		if err != nil {
			t.Fatalf("ReadFile(append.txt): got error %v, want nil", err)
		}
		if string(data) != "one\ntwo\n" {
			t.Errorf("ReadFile(append.txt) = %q, want %q", data, "one\ntwo\n")
		}
	})

	t.Run("MkdirExisting", func(t *testing.T) {
		if err := filesystem.Mkdir("dir", 0o755); err != nil {
			t.Fatalf("Mkdir(dir): got error %v, want nil", err)
		}
		err := filesystem.Mkdir("dir", 0o755)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("Mkdir(dir) second: got error %v, want fs.ErrExist", err)
		}
		if err := filesystem.MkdirAll("dir", 0o755); err != nil {
			t.Errorf("MkdirAll(dir) on existing: got error %v, want nil", err)
		}
	})
}
