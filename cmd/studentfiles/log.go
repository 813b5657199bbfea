package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmgilman/studentfiles/audit"
	"github.com/jmgilman/studentfiles/errors"
	"github.com/jmgilman/studentfiles/fs/core"
)

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Print the workspace activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(a.cfg.Workspace)
			if err != nil {
				return errors.Wrap(err, errors.CodeWorkspaceUnavailable, "failed to resolve workspace path")
			}

			exists, err := a.host.Exists(root)
			if err != nil {
				return errors.Wrap(err, errors.CodeWorkspaceUnavailable, "failed to check workspace")
			}
			if !exists {
				fmt.Fprintf(cmd.OutOrStdout(), "No activity recorded: workspace '%s' does not exist.\n", a.cfg.Workspace)
				return nil
			}

			var scoped core.FS
			if scoped, err = a.host.Chroot(root); err != nil {
				return errors.Wrap(err, errors.CodeWorkspaceUnavailable, "failed to open workspace")
			}

			entries, err := audit.New(scoped, a.cfg.LogFile, nil, a.logger).Entries()
			if err != nil {
				return err
			}
			for _, e := range entries {
				if e.Timestamp.IsZero() {
					fmt.Fprintln(cmd.OutOrStdout(), e.Message)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
			}
			return nil
		},
	}
}
