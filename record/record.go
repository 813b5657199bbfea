// Package record creates and inspects the dated record files that hold the
// names entered during a run.
package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmgilman/studentfiles/audit"
	"github.com/jmgilman/studentfiles/clock"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
	"github.com/jmgilman/studentfiles/prompt"
)

const (
	// DefaultPrefix starts every record file name.
	DefaultPrefix = "records_"
	// DefaultCount is the number of names collected per record.
	DefaultCount = 5
)

// FileName returns the record file name for the date of t, e.g.
// "records_2024-05-17.txt".
func FileName(prefix string, t time.Time) string {
	return prefix + t.Format(clock.DateLayout) + ".txt"
}

// File is a record file written by Create.
type File struct {
	Name      string
	Names     []string
	CreatedAt time.Time
}

// Info describes a record file on disk.
type Info struct {
	Name     string
	Contents string
	Size     int64
	ModTime  time.Time
}

// Store creates and describes record files inside a workspace.
type Store struct {
	fsys   core.FS
	audit  audit.Recorder
	clock  clock.Clock
	logger *logging.Logger
	prefix string
	count  int
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithCount overrides DefaultCount.
func WithCount(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.count = n
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Store writing into fsys and reporting failures to rec.
func NewStore(fsys core.FS, rec audit.Recorder, clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		fsys:   fsys,
		audit:  rec,
		clock:  clk,
		logger: logging.NewNopLogger(),
		prefix: DefaultPrefix,
		count:  DefaultCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create asks src for the configured number of names and writes them, one
// per line, to today's record file. An existing file for the same date is
// replaced. The file is not touched unless every name was read.
//
// On failure the error is written to the activity log and returned with a
// nil File; later stages should treat the record as absent. A successful
// create is not logged.
func (s *Store) Create(ctx context.Context, src prompt.Source) (*File, error) {
	name := FileName(s.prefix, s.clock.Now())

	names := make([]string, 0, s.count)
	for i := 1; i <= s.count; i++ {
		n, err := src.Next(ctx, fmt.Sprintf("Enter name %d: ", i))
		if err != nil {
			return nil, s.fail(ctx, errors.WrapWithContext(err, errors.CodeRecordWrite, "failed to read names",
				map[string]interface{}{"file": name, "read": len(names)}))
		}
		names = append(names, n)
	}

	data := strings.Join(names, "\n") + "\n"
	if err := s.fsys.WriteFile(name, []byte(data), 0o644); err != nil {
		return nil, s.fail(ctx, errors.WrapWithContext(err, errors.CodeRecordWrite, "failed to write record file",
			map[string]interface{}{"file": name}))
	}

	return &File{Name: name, Names: names, CreatedAt: s.clock.Now()}, nil
}

// Describe reads f back and reports its contents, size and modification
// time truncated to the second. A nil f is a no-op and returns nil, nil.
func (s *Store) Describe(ctx context.Context, f *File) (*Info, error) {
	if f == nil {
		return nil, nil
	}

	data, err := s.fsys.ReadFile(f.Name)
	if err != nil {
		return nil, s.failRead(ctx, errors.WrapWithContext(err, errors.CodeRecordRead, "failed to read record file",
			map[string]interface{}{"file": f.Name}))
	}

	info, err := s.fsys.Stat(f.Name)
	if err != nil {
		return nil, s.failRead(ctx, errors.WrapWithContext(err, errors.CodeRecordRead, "failed to stat record file",
			map[string]interface{}{"file": f.Name}))
	}

	return &Info{
		Name:     f.Name,
		Contents: string(data),
		Size:     info.Size(),
		ModTime:  info.ModTime().Truncate(time.Second),
	}, nil
}

func (s *Store) fail(ctx context.Context, err error) error {
	s.audit.Record(ctx, fmt.Sprintf("Error creating file: %v", err))
	s.logger.Error(ctx, "Could not create or write to the file", logging.ErrorFields(err)...)
	return err
}

func (s *Store) failRead(ctx context.Context, err error) error {
	s.audit.Record(ctx, fmt.Sprintf("Error reading file info: %v", err))
	s.logger.Error(ctx, "Could not read file information", logging.ErrorFields(err)...)
	return err
}
