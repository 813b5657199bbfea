// Package report turns a JSON roster of students and scores into a CSV of
// per-student averages, highest first.
//
// The roster file itself must be readable JSON; anything else is fatal.
// Individual records are checked against a CUE schema and skipped with a
// warning when they cannot be averaged, so one bad record never costs the
// rest of the batch.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"

	cuelang "cuelang.org/go/cue"

	"github.com/jmgilman/studentfiles/cue"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
)

const (
	// DefaultInput is the roster file read when none is configured.
	DefaultInput = "students.json"
	// DefaultOutput is the report file written when none is configured.
	DefaultOutput = "report.csv"
	// UnknownID names a skipped record that has no usable id.
	UnknownID = "(unknown)"
)

// Header is the CSV header row.
var Header = []string{"id", "name", "average"}

// studentSchema is the shape every roster record must have. Only scores
// is typed; id and name may hold any JSON value and are rendered as text.
const studentSchema = `
id?:    _
name:   _
scores: [...number]
`

// Row is one line of the report.
type Row struct {
	ID      string
	Name    string
	Average float64
}

// Record renders the row as CSV fields.
func (r Row) Record() []string {
	return []string{r.ID, r.Name, FormatAverage(r.Average)}
}

// Skip is a roster record that could not be averaged.
type Skip struct {
	// Index is the record's position in the roster.
	Index int
	// ID is the record's id, or UnknownID.
	ID  string
	Err error
}

// Result summarizes a report run.
type Result struct {
	Rows    []Row
	Skipped []Skip
	Output  string
}

// student is the decoded form of a valid roster record.
type student struct {
	Scores []float64 `json:"scores"`
}

// Load reads the roster at path as a JSON array and returns its elements
// undecoded. A missing or unreadable file is CodeRosterUnavailable; a
// document that is not a JSON array is CodeRosterMalformed. Both are fatal.
func Load(fsys core.ReadFS, path string) ([]json.RawMessage, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(err, errors.CodeRosterUnavailable,
				fmt.Sprintf("the file '%s' was not found", path),
				map[string]interface{}{"path": path})
		}
		return nil, errors.Wrapf(err, errors.CodeRosterUnavailable, "the file '%s' could not be read", path)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, errors.WithContext(
			errors.Newf(errors.CodeRosterMalformed, "could not decode JSON from the file '%s': expected an array", path),
			"path", path,
		)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeRosterMalformed,
			fmt.Sprintf("could not decode JSON from the file '%s'", path),
			map[string]interface{}{"path": path})
	}
	return records, nil
}

// Compute averages every record that fits the student schema and has at
// least one score. Averages are rounded to two decimals. Rows keep roster
// order; records that cannot be averaged are returned as skips.
func Compute(ctx context.Context, records []json.RawMessage) ([]Row, []Skip, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeCancelled, "report cancelled")
	}

	loader := cue.NewLoader()
	schema, err := loader.LoadBytes(ctx, []byte(studentSchema), "student.cue")
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "failed to compile student schema")
	}

	rows := make([]Row, 0, len(records))
	var skips []Skip
	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return rows, skips, errors.Wrap(err, errors.CodeCancelled, "report cancelled")
		}

		row, id, err := computeOne(ctx, loader, schema, raw)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return rows, skips, errors.Wrap(cerr, errors.CodeCancelled, "report cancelled")
			}
			skips = append(skips, Skip{Index: i, ID: id, Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skips, nil
}

func computeOne(ctx context.Context, loader *cue.Loader, schema cuelang.Value, raw json.RawMessage) (Row, string, error) {
	fields := fieldsOf(raw)
	id := UnknownID
	if v, ok := fields["id"]; ok {
		id = render(v)
	}

	v, err := loader.LoadBytes(ctx, raw, "record.json")
	if err != nil {
		return Row{}, id, skip(err, "record is not a valid value", id)
	}
	if err := cue.Validate(ctx, schema, v); err != nil {
		return Row{}, id, skip(err, "record does not match the student schema", id)
	}

	var s student
	if err := cue.Decode(ctx, v, &s); err != nil {
		return Row{}, id, skip(err, "failed to decode record", id)
	}
	if len(s.Scores) == 0 {
		return Row{}, id, errors.WithContext(
			errors.New(errors.CodeRecordInvalid, "division by zero: record has no scores"),
			"id", id,
		)
	}

	return Row{ID: id, Name: render(fields["name"]), Average: Average(s.Scores)}, id, nil
}

// fieldsOf decodes a record's top-level fields, keeping numbers as written.
// It returns nil when the record is not a JSON object.
func fieldsOf(raw json.RawMessage) map[string]interface{} {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil
	}
	return fields
}

// render turns a decoded JSON value into report text. Strings and numbers
// appear as written and null is empty.
func render(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func skip(err error, msg, id string) error {
	return errors.WithClassification(
		errors.WrapWithContext(err, errors.CodeRecordInvalid, msg, map[string]interface{}{"id": id}),
		errors.ClassificationRecordSkip,
	)
}

// Average returns the mean of scores rounded to two decimals. Rounding
// works on the exact value of the mean, so a tie resolves to the even
// digit. scores must not be empty.
func Average(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	avg, err := strconv.ParseFloat(strconv.FormatFloat(mean, 'f', 2, 64), 64)
	if err != nil {
		return mean
	}
	return avg
}

// FormatAverage renders an average the way the report shows it: whole
// numbers keep one decimal ("95.0"), others use the shortest form ("86.67").
func FormatAverage(avg float64) string {
	if avg == math.Trunc(avg) && !math.IsInf(avg, 0) {
		return strconv.FormatFloat(avg, 'f', 1, 64)
	}
	return strconv.FormatFloat(avg, 'f', -1, 64)
}

// SortRows orders rows by average, highest first. Rows with equal averages
// keep their relative order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Average > rows[j].Average
	})
}

// WriteCSV writes the header and rows to w with CRLF line endings.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Generator runs the roster-to-report pipeline against a filesystem.
type Generator struct {
	fsys   core.FS
	logger *logging.Logger
}

// NewGenerator creates a Generator. A nil logger discards diagnostics.
func NewGenerator(fsys core.FS, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Generator{fsys: fsys, logger: logger}
}

// Run loads the roster at input, computes and sorts the rows and writes
// them to output. Load failures are fatal. Each skipped record is logged
// as a warning naming its id. A write failure is logged and returned as a
// stage failure; the computed rows are still returned.
func (g *Generator) Run(ctx context.Context, input, output string) (*Result, error) {
	records, err := Load(g.fsys, input)
	if err != nil {
		g.logger.Error(ctx, "Could not load roster", logging.ErrorFields(err)...)
		return nil, err
	}

	rows, skips, err := Compute(ctx, records)
	if err != nil {
		return nil, err
	}
	for _, s := range skips {
		g.logger.Warn(ctx, fmt.Sprintf("Could not compute average for student %s. Skipping.", s.ID),
			logging.ErrorFields(s.Err)...)
	}
	SortRows(rows)

	res := &Result{Rows: rows, Skipped: skips, Output: output}
	if err := g.write(output, rows); err != nil {
		g.logger.Error(ctx, fmt.Sprintf("Could not write to the CSV file '%s'", output), logging.ErrorFields(err)...)
		return res, err
	}
	return res, nil
}

func (g *Generator) write(name string, rows []Row) (err error) {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		info, err := g.fsys.Stat(dir)
		if err != nil {
			return errors.WrapWithContext(err, errors.CodeReportWrite, "report directory is not accessible", map[string]interface{}{"path": name})
		}
		if !info.IsDir() {
			return errors.WithContext(
				errors.Newf(errors.CodeReportWrite, "report directory '%s' is not a directory", dir),
				"path", name,
			)
		}
	}

	f, err := g.fsys.Create(name)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeReportWrite, "failed to create report", map[string]interface{}{"path": name})
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapWithContext(cerr, errors.CodeReportWrite, "failed to close report", map[string]interface{}{"path": name})
		}
	}()

	if err := WriteCSV(f, rows); err != nil {
		return errors.WrapWithContext(err, errors.CodeReportWrite, "failed to write report", map[string]interface{}{"path": name})
	}
	return nil
}
