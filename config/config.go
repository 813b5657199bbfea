// Package config holds the file and directory names the pipeline works with.
//
// Configuration is an optional YAML file overlaid on Default. The merged
// result is checked against a CUE schema before use, so a bad file fails
// fast with CodeInvalidConfig instead of surfacing mid-pipeline.
package config

import (
	"bytes"
	"context"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmgilman/studentfiles/cue"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
)

// Config is the effective pipeline configuration.
type Config struct {
	Workspace      string `yaml:"workspace" json:"workspace"`
	LogFile        string `yaml:"log_file" json:"log_file"`
	ArchiveDir     string `yaml:"archive_dir" json:"archive_dir"`
	RecordPrefix   string `yaml:"record_prefix" json:"record_prefix"`
	BackupPrefix   string `yaml:"backup_prefix" json:"backup_prefix"`
	NamesPerRecord int    `yaml:"names_per_record" json:"names_per_record"`
	Roster         string `yaml:"roster" json:"roster"`
	Report         string `yaml:"report" json:"report"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workspace:      "StudentFiles",
		LogFile:        "activity_log.txt",
		ArchiveDir:     "Archive",
		RecordPrefix:   "records_",
		BackupPrefix:   "backup_",
		NamesPerRecord: 5,
		Roster:         "students.json",
		Report:         "report.csv",
		LogLevel:       "info",
	}
}

// schema constrains a Config after it has been converted to CUE.
// The workspace may be an absolute path; every other name is a plain
// file or directory name inside it.
const schema = `
#name: string & != "" & !~"[/\\\\]"

workspace:        string & != ""
log_file:         #name
archive_dir:      #name
record_prefix:    string & !~"[/\\\\]"
backup_prefix:    string & != "" & !~"[/\\\\]"
names_per_record: int & >=1
roster:           string & != ""
report:           string & != ""
log_level:        "debug" | "info" | "warn" | "error"
`

// Load reads path from fsys and overlays it on Default. A missing file or
// an empty path yields the defaults. Unknown keys are rejected.
func Load(ctx context.Context, fsys core.ReadFS, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	exists, err := fsys.Exists(path)
	if err != nil {
		return Config{}, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to check configuration file",
			map[string]interface{}{"path": path})
	}
	if !exists {
		return cfg, Validate(ctx, cfg)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to read configuration file",
			map[string]interface{}{"path": path})
	}

	cfg, err = Parse(ctx, data)
	if err != nil {
		return Config{}, errors.WithContext(err, "path", path)
	}
	return cfg, nil
}

// Parse overlays a YAML document on Default and validates the result.
func Parse(ctx context.Context, data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to parse configuration")
	}

	if err := Validate(ctx, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the configuration schema.
func Validate(ctx context.Context, cfg Config) error {
	loader := cue.NewLoader()

	s, err := loader.LoadBytes(ctx, []byte(schema), "config.cue")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to compile configuration schema")
	}

	v, err := loader.FromGo(ctx, cfg)
	if err != nil {
		return invalid(err, "failed to convert configuration")
	}

	if err := cue.ValidateWithOptions(ctx, s, v, cue.DefaultValidationOptions()); err != nil {
		return invalid(err, "configuration does not satisfy schema")
	}
	return nil
}

// Render returns the configuration as YAML, in schema field order.
func Render(ctx context.Context, cfg Config) ([]byte, error) {
	v, err := cue.NewLoader().FromGo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cue.EncodeYAML(ctx, v)
}

// RenderJSON returns the configuration as a single line of JSON.
func RenderJSON(ctx context.Context, cfg Config) ([]byte, error) {
	v, err := cue.NewLoader().FromGo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cue.EncodeJSON(ctx, v)
}

// invalid rewraps a CUE failure as a fatal configuration error, carrying
// the validation issues forward so callers can report them by field.
func invalid(err error, msg string) error {
	var ctx map[string]interface{}
	if issues := cue.Issues(err); len(issues) > 0 {
		ctx = map[string]interface{}{"issues": issues}
	}
	return errors.WithClassification(
		errors.WrapWithContext(err, errors.CodeInvalidConfig, msg, ctx),
		errors.ClassificationFatal,
	)
}
