package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/report"
)

func newReportCmd(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a CSV of student averages from a JSON roster",
		Long: `report reads a JSON array of {id, name, scores} records, averages each
student's scores and writes id,name,average rows sorted from highest to
lowest average. Records without scores are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				input = a.cfg.Roster
			}
			if output == "" {
				output = a.cfg.Report
			}

			in, err := filepath.Abs(input)
			if err != nil {
				return errors.WithClassification(
					errors.Wrap(err, errors.CodeRosterUnavailable, "failed to resolve roster path"),
					errors.ClassificationFatal,
				)
			}
			out, err := filepath.Abs(output)
			if err != nil {
				return errors.Wrap(err, errors.CodeReportWrite, "failed to resolve report path")
			}

			gen := report.NewGenerator(a.host, a.logger.WithStage("report"))
			if _, err := gen.Run(cmd.Context(), in, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully created '%s' with student average scores.\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "roster JSON file (default from configuration: students.json)")
	cmd.Flags().StringVar(&output, "output", "", "report CSV file (default from configuration: report.csv)")
	return cmd
}
