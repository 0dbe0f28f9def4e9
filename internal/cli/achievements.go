package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAchievementsCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"badges"},
		Short:   "Show achievement badges and progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			for _, badge := range a.Game.Achievements(a.Tasks.List(), a.Pomo.Sessions()) {
				mark := styleMuted.Render("○")
				name := styleMuted.Render(badge.Name)
				if badge.Unlocked {
					mark = styleSuccess.Render("●")
					name = styleBold.Render(badge.Name)
				}
				fmt.Fprintf(out, "%s %-14s %s %s\n",
					mark, name,
					styleMuted.Render(fmt.Sprintf("%d/%d", badge.Progress, badge.Target)),
					badge.Description)
			}
			return nil
		},
	}
}
