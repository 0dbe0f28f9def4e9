package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusfoundry/tempo/internal/gamification"
)

func newLevelCmd(appFn func() *App) *cobra.Command {
	var history bool
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Show weekly level, XP, and trophy history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()
			a.RefreshDerived()

			state := a.Game.State()
			xp := gamification.ComputeXP(a.Tasks.List())

			fmt.Fprintf(out, "%s %s\n", styleTitle.Render("level"), styleBold.Render(fmt.Sprintf("%d", state.CurrentLevel)))
			fmt.Fprintf(out, "xp: %d total, level %d (%d/200 into next)\n", xp.Total, xp.Level, xp.Progress)
			fmt.Fprintf(out, "best week: %s tasks\n", styleBold.Render(fmt.Sprintf("%d", state.BestWeeklyCompleted)))
			if state.LastEvaluatedWeek != "" {
				fmt.Fprintf(out, "last evaluated: %s\n", styleMuted.Render(state.LastEvaluatedWeek))
			}

			if history {
				if len(state.History) == 0 {
					fmt.Fprintln(out, styleMuted.Render("no history yet"))
					return nil
				}
				fmt.Fprintln(out)
				for i := len(state.History) - 1; i >= 0; i-- {
					h := state.History[i]
					fmt.Fprintf(out, "%s  %2d done  level %d  %s\n",
						h.Week, h.Completed, h.LevelAfter, trophyBadge(string(h.Trophy)))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&history, "history", false, "include the week-by-week history")
	return cmd
}

func trophyBadge(tier string) string {
	switch tier {
	case "diamond":
		return styleTitle.Render("◆ diamond")
	case "gold":
		return styleWarning.Render("● gold")
	case "silver":
		return styleBold.Render("● silver")
	case "bronze":
		return styleMuted.Render("● bronze")
	default:
		return styleMuted.Render("○ starter")
	}
}
