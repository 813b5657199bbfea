// Package fstest provides a conformance suite for core.FS providers.
//
// It checks the behaviors the student workspace depends on: truncating
// writes for record files, appending writes for the audit log, moving a
// file into a subdirectory for the archive, removing files, and sorted
// directory listings.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/studentfiles/fs/core"
)

// TestSuite runs all conformance tests against a filesystem.
// newFS must return a fresh, empty filesystem on every call.
func TestSuite(t *testing.T, newFS func() core.FS) {
	t.Run("ReadFS", func(t *testing.T) {
		TestReadFS(t, newFS())
	})
	t.Run("WriteFS", func(t *testing.T) {
		TestWriteFS(t, newFS())
	})
	t.Run("ManageFS", func(t *testing.T) {
		TestManageFS(t, newFS())
	})
	t.Run("ChrootFS", func(t *testing.T) {
		TestChrootFS(t, newFS())
	})
}
