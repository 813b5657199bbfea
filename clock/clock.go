// Package clock abstracts the wall clock so record names, audit timestamps
// and creation messages can be made deterministic in tests.
package clock

import "time"

// Layouts shared by every stage.
const (
	// DateLayout is the record file date stamp (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// TimestampLayout is the second-precision, lexically sortable timestamp.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock, in local time.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Stamp formats t with TimestampLayout.
func Stamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
