// Package audit maintains the workspace activity log: an append-only text
// file with one "[YYYY-MM-DD HH:MM:SS] message" line per event.
//
// Writing an entry never fails the caller. If the log cannot be written the
// failure is reported once through the logger at CRITICAL level and the
// caller carries on with its primary work.
package audit

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmgilman/studentfiles/clock"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
)

// DefaultFileName is the log file name inside the workspace.
const DefaultFileName = "activity_log.txt"

// Recorder is the write side of the activity log. Components that report
// outcomes depend on this rather than on *Log.
type Recorder interface {
	Record(ctx context.Context, message string)
}

// LogEntry is one parsed line of the activity log.
type LogEntry struct {
	Timestamp time.Time
	Message   string
}

// String renders the entry in its on-disk form, without the newline.
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", clock.Stamp(e.Timestamp), e.Message)
}

// Log appends entries to a file relative to a workspace filesystem.
type Log struct {
	fsys   core.FS
	name   string
	clock  clock.Clock
	logger *logging.Logger
}

// New creates a Log writing to name inside fsys. The file is created on
// first write. A nil clock uses the system clock; a nil logger discards
// critical diagnostics.
func New(fsys core.FS, name string, clk clock.Clock, logger *logging.Logger) *Log {
	if name == "" {
		name = DefaultFileName
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Log{fsys: fsys, name: name, clock: clk, logger: logger}
}

// Name returns the log file name.
func (l *Log) Name() string {
	return l.name
}

// Record appends message to the log. Failures are reported through the
// logger at CRITICAL level and never returned.
func (l *Log) Record(ctx context.Context, message string) {
	if err := l.Append(message); err != nil {
		l.logger.Critical(ctx, "Could not write to log file", logging.ErrorFields(err)...)
	}
}

// Append writes a single entry and reports any failure to the caller.
// The entry is flushed to stable storage when the file supports Sync.
// Most callers want Record.
func (l *Log) Append(message string) (err error) {
	entry := LogEntry{Timestamp: l.clock.Now(), Message: message}

	f, err := l.fsys.OpenFile(l.name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeAuditWrite, "failed to open activity log",
			map[string]interface{}{"path": l.name})
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapWithContext(cerr, errors.CodeAuditWrite, "failed to close activity log",
				map[string]interface{}{"path": l.name})
		}
	}()

	if _, err := f.Write([]byte(entry.String() + "\n")); err != nil {
		return errors.WrapWithContext(err, errors.CodeAuditWrite, "failed to append to activity log",
			map[string]interface{}{"path": l.name})
	}
	if s, ok := f.(core.Syncer); ok {
		if err := s.Sync(); err != nil {
			return errors.WrapWithContext(err, errors.CodeAuditWrite, "failed to sync activity log",
				map[string]interface{}{"path": l.name})
		}
	}
	return nil
}

// Entries reads the log back in insertion order. A log that has never been
// written yields no entries. Lines that do not carry a timestamp prefix are
// returned with a zero Timestamp and the whole line as the message.
func (l *Log) Entries() ([]LogEntry, error) {
	exists, err := l.fsys.Exists(l.name)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeRecordRead, "failed to check activity log",
			map[string]interface{}{"path": l.name})
	}
	if !exists {
		return nil, nil
	}

	data, err := l.fsys.ReadFile(l.name)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeRecordRead, "failed to read activity log",
			map[string]interface{}{"path": l.name})
	}

	var entries []LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		entries = append(entries, parseLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeRecordRead, "failed to scan activity log",
			map[string]interface{}{"path": l.name})
	}
	return entries, nil
}

func parseLine(line string) LogEntry {
	if !strings.HasPrefix(line, "[") {
		return LogEntry{Message: line}
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return LogEntry{Message: line}
	}
	ts, err := time.ParseInLocation(clock.TimestampLayout, line[1:end], time.Local)
	if err != nil {
		return LogEntry{Message: line}
	}
	return LogEntry{Timestamp: ts, Message: line[end+2:]}
}

var _ Recorder = (*Log)(nil)
