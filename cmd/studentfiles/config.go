package main

import (
	"github.com/spf13/cobra"

	"github.com/jmgilman/studentfiles/config"
	"github.com/jmgilman/studentfiles/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out []byte
				err error
			)
			switch format {
			case "yaml":
				out, err = config.Render(cmd.Context(), a.cfg)
			case "json":
				out, err = config.RenderJSON(cmd.Context(), a.cfg)
			default:
				return errors.WithClassification(
					errors.Newf(errors.CodeInvalidInput, "unknown format %q: want yaml or json", format),
					errors.ClassificationFatal,
				)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, json)")
	return cmd
}
