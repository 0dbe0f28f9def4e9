package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/export"
)

func newExportCmd(appFn func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data for use outside tempo",
	}
	cmd.AddCommand(newExportSessionsCmd(appFn))
	return cmd
}

func newExportSessionsCmd(appFn func() *App) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Export logged pomodoro sessions as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()

			sessions := a.Pomo.Sessions()
			tasks := a.Tasks.List()

			if outPath == "" {
				return export.SessionsCSV(cmd.OutOrStdout(), sessions, tasks)
			}

			f, err := os.Create(outPath) //nolint:gosec // user-chosen output path
			if err != nil {
				return errors.Wrapf(err, "failed to create %s", outPath)
			}
			if err := export.SessionsCSV(f, sessions, tasks); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrapf(err, "failed to close %s", outPath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d sessions to %s\n",
				styleSuccess.Render("exported"), len(sessions), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
