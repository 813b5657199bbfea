package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/billy"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
)

// noCreateFS refuses to create files.
type noCreateFS struct {
	core.FS
}

func (noCreateFS) Create(name string) (core.File, error) {
	return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrPermission}
}

// unreadableFS fails every read with a permission error.
type unreadableFS struct {
	core.FS
}

func (unreadableFS) ReadFile(name string) ([]byte, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func roster(t *testing.T, doc string) []json.RawMessage {
	t.Helper()
	var records []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(doc), &records))
	return records
}

func TestRun_Example(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("students.json", []byte(`[
		{"id": 1, "name": "A", "scores": [10, 20]},
		{"id": 2, "name": "B", "scores": []},
		{"id": 3, "name": "C", "scores": [90, 100]}
	]`), 0o644))

	var logs bytes.Buffer
	logger := logging.NewLogger(logging.LogConfig{Level: logging.LogLevelInfo, Output: &logs})

	res, err := NewGenerator(fsys, logger).Run(context.Background(), DefaultInput, DefaultOutput)
	require.NoError(t, err)

	data, err := fsys.ReadFile(DefaultOutput)
	require.NoError(t, err)
	assert.Equal(t, "id,name,average\r\n3,C,95.0\r\n1,A,15.0\r\n", string(data))

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "2", res.Skipped[0].ID)
	assert.Equal(t, 1, res.Skipped[0].Index)
	assert.Equal(t, errors.ClassificationRecordSkip, errors.GetClassification(res.Skipped[0].Err))

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Could not compute average for student 2. Skipping.")
}

func TestRun_MissingRoster(t *testing.T) {
	_, err := NewGenerator(billy.NewMemory(), nil).Run(context.Background(), "students.json", "report.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeRosterUnavailable, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestRun_UnreadableRoster(t *testing.T) {
	_, err := NewGenerator(unreadableFS{billy.NewMemory()}, nil).Run(context.Background(), "students.json", "report.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeRosterUnavailable, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "the file 'students.json' could not be read")
	assert.NotContains(t, err.Error(), "was not found")
}

func TestRun_MissingRosterMessage(t *testing.T) {
	_, err := NewGenerator(billy.NewMemory(), nil).Run(context.Background(), "students.json", "report.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "the file 'students.json' was not found")
}

func TestRun_MalformedRoster(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "truncated", doc: `[{"id": 1,`},
		{name: "object", doc: `{"id": 1}`},
		{name: "null", doc: `null`},
		{name: "empty", doc: ``},
		{name: "trailing garbage", doc: `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := billy.NewMemory()
			require.NoError(t, fsys.WriteFile("students.json", []byte(tt.doc), 0o644))

			_, err := NewGenerator(fsys, nil).Run(context.Background(), "students.json", "report.csv")
			require.Error(t, err)
			assert.Equal(t, errors.CodeRosterMalformed, errors.GetCode(err))
			assert.True(t, errors.IsFatal(err))

			exists, err := fsys.Exists("report.csv")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestRun_WriteFailure(t *testing.T) {
	fsys := noCreateFS{billy.NewMemory()}
	require.NoError(t, fsys.WriteFile("students.json", []byte(`[{"id": 1, "name": "A", "scores": [1, 2]}]`), 0o644))

	res, err := NewGenerator(fsys, nil).Run(context.Background(), "students.json", "report.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeReportWrite, errors.GetCode(err))
	assert.False(t, errors.IsFatal(err))
	require.NotNil(t, res)
	assert.Equal(t, []Row{{ID: "1", Name: "A", Average: 1.5}}, res.Rows)
}

func TestRun_MissingOutputDirectory(t *testing.T) {
	tests := []struct {
		name   string
		output string
		setup  func(t *testing.T, fsys core.FS)
	}{
		{name: "missing directory", output: "nope/report.csv"},
		{
			name:   "parent is a file",
			output: "plain/report.csv",
			setup: func(t *testing.T, fsys core.FS) {
				require.NoError(t, fsys.WriteFile("plain", []byte("x"), 0o644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := billy.NewMemory()
			require.NoError(t, fsys.WriteFile("students.json", []byte(`[{"id": 1, "name": "A", "scores": [1, 2]}]`), 0o644))
			if tt.setup != nil {
				tt.setup(t, fsys)
			}

			res, err := NewGenerator(fsys, nil).Run(context.Background(), "students.json", tt.output)
			require.Error(t, err)
			assert.Equal(t, errors.CodeReportWrite, errors.GetCode(err))
			assert.False(t, errors.IsFatal(err))
			require.NotNil(t, res)
			assert.Len(t, res.Rows, 1)

			exists, err := fsys.Exists(tt.output)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestRun_OutputInExistingDirectory(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("students.json", []byte(`[{"id": 1, "name": "A", "scores": [1, 2]}]`), 0o644))
	require.NoError(t, fsys.MkdirAll("out", 0o755))

	_, err := NewGenerator(fsys, nil).Run(context.Background(), "students.json", "out/report.csv")
	require.NoError(t, err)

	data, err := fsys.ReadFile("out/report.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name,average\r\n1,A,1.5\r\n", string(data))
}

func TestRun_EmptyRoster(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("students.json", []byte(" [ ] "), 0o644))

	res, err := NewGenerator(fsys, nil).Run(context.Background(), "students.json", "report.csv")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)

	data, err := fsys.ReadFile("report.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name,average\r\n", string(data))
}

func TestCompute_Skips(t *testing.T) {
	records := roster(t, `[
		{"id": 1, "name": "Ann", "scores": [90, 80]},
		{"id": 2, "name": "Bo", "scores": ["a", 1]},
		{"name": "NoID", "scores": []},
		{"id": "s-4", "name": "Dee", "scores": null},
		{"id": 5, "scores": [1]},
		42,
		{"id": 6, "name": "Fay", "scores": [70.5], "extra": true}
	]`)

	rows, skips, err := Compute(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []Row{
		{ID: "1", Name: "Ann", Average: 85},
		{ID: "6", Name: "Fay", Average: 70.5},
	}, rows)

	var ids []string
	for _, s := range skips {
		ids = append(ids, s.ID)
		assert.Equal(t, errors.CodeRecordInvalid, errors.GetCode(s.Err))
		assert.False(t, errors.IsFatal(s.Err))
	}
	assert.Equal(t, []string{"2", UnknownID, "s-4", "5", UnknownID}, ids)
}

func TestCompute_StringID(t *testing.T) {
	rows, skips, err := Compute(context.Background(), roster(t, `[{"id": "A7", "name": "Ann", "scores": [1, 2, 2]}]`))
	require.NoError(t, err)
	assert.Empty(t, skips)
	assert.Equal(t, []Row{{ID: "A7", Name: "Ann", Average: 1.67}}, rows)
}

func TestCompute_LooseFields(t *testing.T) {
	records := roster(t, `[
		{"id": 1.5, "name": "Float", "scores": [1]},
		{"id": null, "name": "Null", "scores": [2]},
		{"id": 3, "name": 42, "scores": [3]},
		{"id": 12345678901234567890, "name": "Big", "scores": [4]},
		{"id": 5, "name": null, "scores": [5]},
		{"id": true, "name": ["x"], "scores": [6]},
		{"name": "NoID", "scores": [7]}
	]`)

	rows, skips, err := Compute(context.Background(), records)
	require.NoError(t, err)
	assert.Empty(t, skips)
	assert.Equal(t, []Row{
		{ID: "1.5", Name: "Float", Average: 1},
		{ID: "", Name: "Null", Average: 2},
		{ID: "3", Name: "42", Average: 3},
		{ID: "12345678901234567890", Name: "Big", Average: 4},
		{ID: "5", Name: "", Average: 5},
		{ID: "true", Name: `["x"]`, Average: 6},
		{ID: UnknownID, Name: "NoID", Average: 7},
	}, rows)
}

func TestCompute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Compute(ctx, roster(t, `[{"id": 1, "name": "A", "scores": [1]}]`))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCancelled, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestAverage(t *testing.T) {
	tests := []struct {
		scores []float64
		want   float64
	}{
		{[]float64{10, 20}, 15},
		{[]float64{90, 100}, 95},
		{[]float64{80, 90, 90}, 86.67},
		{[]float64{1, 2}, 1.5},
		{[]float64{-3}, -3},
		{[]float64{90, 90, 90, 90, 90, 90, 90, 91}, 90.12},
		{[]float64{1, 1, 1, 1, 1, 0, 0, 0}, 0.62},
		{[]float64{2.675}, 2.67},
		{[]float64{0.125}, 0.12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Average(tt.scores), "scores %v", tt.scores)
	}
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, "95.0", FormatAverage(95))
	assert.Equal(t, "15.0", FormatAverage(15))
	assert.Equal(t, "86.67", FormatAverage(86.67))
	assert.Equal(t, "70.5", FormatAverage(70.5))
	assert.Equal(t, "0.0", FormatAverage(0))
}

func TestSortRows_StableDescending(t *testing.T) {
	rows := []Row{
		{ID: "1", Average: 50},
		{ID: "2", Average: 90},
		{ID: "3", Average: 50},
		{ID: "4", Average: 90},
		{ID: "5", Average: 70},
	}
	SortRows(rows)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"2", "4", "5", "1", "3"}, ids)
}

func TestWriteCSV_Quotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Row{{ID: "1", Name: "Doe, Jane", Average: 88.25}}))
	assert.Equal(t, "id,name,average\r\n1,\"Doe, Jane\",88.25\r\n", buf.String())
}
