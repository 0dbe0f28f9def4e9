package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStreakCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the consecutive-days completion streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			streak := a.Game.Streak(a.Tasks.List())
			switch {
			case streak == 0:
				fmt.Fprintln(out, styleMuted.Render("no streak yet. Complete a task today to start one."))
			case streak == 1:
				fmt.Fprintf(out, "%s 1 day\n", styleSuccess.Render("streak"))
			default:
				fmt.Fprintf(out, "%s %d days\n", styleSuccess.Render("streak"), streak)
			}
			return nil
		},
	}
}
