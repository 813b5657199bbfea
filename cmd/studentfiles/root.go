package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmgilman/studentfiles/clock"
	"github.com/jmgilman/studentfiles/config"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/billy"
	"github.com/jmgilman/studentfiles/fs/core"
	"github.com/jmgilman/studentfiles/logging"
	"github.com/jmgilman/studentfiles/pipeline"
	"github.com/jmgilman/studentfiles/prompt"
)

const defaultConfigFile = "studentfiles.yaml"

// app carries the state shared by every command once flags are parsed.
type app struct {
	configPath string
	workspace  string
	logLevel   string

	host   core.FS
	cfg    config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{host: billy.NewLocal()}

	cmd := &cobra.Command{
		Use:   "studentfiles",
		Short: "Create, back up and curate dated student record files",
		Long: `studentfiles initializes the workspace directory, asks for student names
and writes them to today's record file, shows the file, archives a backup
copy and finally offers to delete a file from the workspace.

Every outcome worth keeping is appended to the workspace activity log.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runPipeline,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.WithClassification(errors.Wrap(err, errors.CodeInvalidInput, "invalid flags"), errors.ClassificationFatal)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigFile, "configuration file (YAML); ignored when absent")
	flags.StringVar(&a.workspace, "workspace", "", "workspace directory (overrides the configuration file)")
	flags.StringVar(&a.logLevel, "log-level", "", "diagnostic level: debug, info, warn or error")

	cmd.AddCommand(newReportCmd(a), newLogCmd(a), newConfigCmd(a))
	return cmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger. Configuration problems are fatal.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	path, err := filepath.Abs(a.configPath)
	if err != nil {
		return errors.WithClassification(
			errors.Wrap(err, errors.CodeInvalidConfig, "failed to resolve configuration path"),
			errors.ClassificationFatal,
		)
	}

	cfg, err := config.Load(ctx, a.host, path)
	if err != nil {
		return err
	}
	if a.workspace != "" {
		cfg.Workspace = a.workspace
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := config.Validate(ctx, cfg); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.WithClassification(err, errors.ClassificationFatal)
	}

	a.cfg = cfg
	a.logger = logging.NewLogger(logging.LogConfig{Level: level, Output: cmd.ErrOrStderr()})
	return nil
}

func (a *app) runPipeline(cmd *cobra.Command, _ []string) error {
	p := pipeline.New(pipeline.Options{
		Config: a.cfg,
		Host:   a.host,
		Clock:  clock.System{},
		Input:  a.input(cmd),
		Out:    cmd.OutOrStdout(),
		Logger: a.logger,
	})

	_, err := p.Run(cmd.Context())
	return err
}

// input reads answers from the command's stdin. Prompts are echoed only
// when that is an interactive terminal.
func (a *app) input(cmd *cobra.Command) prompt.Source {
	if in := cmd.InOrStdin(); in != os.Stdin {
		return prompt.NewReaderSource(in, nil)
	}
	return prompt.NewStdinSource()
}
