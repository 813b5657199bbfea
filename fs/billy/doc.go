// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps go-billy's osfs and is what the CLI uses for the real
// workspace. MemoryFS wraps memfs and is what every test in this module runs
// against.
//
// Usage:
//
//	// Local filesystem rooted at "/"
//	fsys := billy.NewLocal()
//
//	// Scope it to the workspace directory
//	ws, err := fsys.Chroot("/home/me/StudentFiles")
//
//	// In-memory filesystem for tests
//	mem := billy.NewMemory()
//	err = mem.WriteFile("records_2024-01-02.txt", []byte("Ann\n"), 0o644)
//
// # Thread Safety
//
// The pipeline is single-threaded and does not rely on concurrent access.
// File handles are not safe for concurrent use.
package billy
