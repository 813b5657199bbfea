// Package core defines the filesystem contracts the student workspace is
// built on.
//
// Every stage of the pipeline (record creation, inspection, backup, archive,
// deletion and the audit log) talks to the workspace through these
// interfaces instead of the os package, so the same code runs against the
// local disk in production and an in-memory filesystem in tests.
//
// # Interface Hierarchy
//
// The main FS interface is composed of four sub-interfaces:
//
//   - ReadFS: Open, Stat, ReadDir, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, Mkdir, MkdirAll
//   - ManageFS: Remove, Rename
//   - ChrootFS: Chroot
//
// # Helpers
//
// CopyFile copies one file to another name with guaranteed handle release.
// ListNames returns the sorted names in a directory.
//
// # Providers
//
// Concrete implementations live in github.com/jmgilman/studentfiles/fs/billy.
package core
