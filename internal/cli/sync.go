package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(appFn func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push or pull tasks against the configured cloud endpoint",
	}
	cmd.AddCommand(newSyncPushCmd(appFn), newSyncPullCmd(appFn), newSyncStatusCmd(appFn))
	return cmd
}

func newSyncPushCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload the local task list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			tasks := a.Tasks.List()
			res := a.Cloud.PushTasks(cmd.Context(), tasks)
			if !res.OK {
				fmt.Fprintln(out, styleError.Render(res.Err))
				return nil
			}
			fmt.Fprintf(out, "%s %d tasks\n", styleSuccess.Render("pushed"), len(tasks))
			return nil
		},
	}
}

// newSyncPullCmd replaces the local task list with the remote copy.
// Conflict resolution is last-fetch-wins; local edits made since the
// last push are overwritten.
func newSyncPullCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace local tasks with the remote copy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			res, tasks := a.Cloud.PullTasks(cmd.Context())
			if !res.OK {
				fmt.Fprintln(out, styleError.Render(res.Err))
				return nil
			}
			if err := a.Tasks.Replace(tasks); err != nil {
				return err
			}
			a.RefreshDerived()
			fmt.Fprintf(out, "%s %d tasks\n", styleSuccess.Render("pulled"), len(tasks))
			return nil
		},
	}
}

func newSyncStatusCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and device identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			if !a.Cloud.Configured() {
				fmt.Fprintln(out, styleMuted.Render("cloud sync not configured. Set cloud.base_url to enable."))
				return nil
			}
			fmt.Fprintf(out, "device: %s\n", styleBold.Render(a.Cloud.DeviceID()))
			fmt.Fprintln(out, styleSuccess.Render("configured"))
			return nil
		},
	}
}
