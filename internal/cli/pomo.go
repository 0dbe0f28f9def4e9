package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/pomodoro"
)

// watchTickInterval is how often the watch loop re-derives remaining time
// from the persisted end timestamp.
const watchTickInterval = 500 * time.Millisecond

func newPomoCmd(appFn func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomo",
		Short: "Pomodoro focus timer",
	}
	cmd.AddCommand(
		newPomoStartCmd(appFn),
		newPomoPauseCmd(appFn),
		newPomoResetCmd(appFn),
		newPomoSkipCmd(appFn),
		newPomoStatusCmd(appFn),
		newPomoWatchCmd(appFn),
	)
	return cmd
}

func newPomoStartCmd(appFn func() *App) *cobra.Command {
	var taskID string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			if taskID != "" {
				if _, err := a.Pomo.SelectTask(taskID); err != nil {
					return err
				}
			}
			s, err := a.Pomo.Start()
			if err != nil {
				return err
			}
			printPomoState(cmd.OutOrStdout(), a, s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&taskID, "task", "t", "", "bind the session to a task id")
	return cmd
}

func newPomoPauseCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			s, err := a.Pomo.Pause()
			if err != nil {
				return err
			}
			printPomoState(cmd.OutOrStdout(), a, s)
			return nil
		},
	}
}

func newPomoResetCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the current interval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			s, err := a.Pomo.Reset()
			if err != nil {
				return err
			}
			printPomoState(cmd.OutOrStdout(), a, s)
			return nil
		},
	}
}

func newPomoSkipCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Skip to the next interval without logging a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			s, err := a.Pomo.Skip()
			if err != nil {
				return err
			}
			printPomoState(cmd.OutOrStdout(), a, s)
			return nil
		},
	}
}

func newPomoStatusCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show timer state and today's focus totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()
			printPomoState(out, a, a.Pomo.State())

			today := a.Pomo.Today()
			fmt.Fprintf(out, "today: %s focus, %s break, %d sessions\n",
				styleBold.Render(fmt.Sprintf("%dm", today.FocusMinutes)),
				fmt.Sprintf("%dm", today.BreakMinutes),
				today.Sessions)
			if goal := a.Pomo.Config().DailyGoalMinutes; goal > 0 {
				fmt.Fprintf(out, "daily goal: %d/%d minutes\n", today.FocusMinutes, goal)
			}
			return nil
		},
	}
}

// newPomoWatchCmd runs the timer in the foreground, ticking the engine until
// the interval completes or the user interrupts.
func newPomoWatchCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the timer in the foreground until the interval ends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			s, err := a.Pomo.Start()
			if err != nil {
				return err
			}
			startMode := s.Mode

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				ticker := time.NewTicker(watchTickInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						if _, perr := a.Pomo.Pause(); perr != nil {
							return perr
						}
						fmt.Fprintln(out)
						fmt.Fprintln(out, styleMuted.Render("paused"))
						return nil
					case <-ticker.C:
						next, terr := a.Pomo.Tick()
						if terr != nil {
							return terr
						}
						fmt.Fprintf(out, "\r%s %s  ", modeLabel(next), formatClock(next.RemainingSeconds))
						if next.Mode != startMode || !next.Running {
							fmt.Fprintln(out)
							printPomoState(out, a, next)
							a.RefreshDerived()
							return nil
						}
					}
				}
			})
			return g.Wait()
		},
	}
}

func printPomoState(out io.Writer, a *App, s pomodoro.State) {
	state := styleMuted.Render("paused")
	if s.Running {
		state = styleSuccess.Render("running")
	}
	fmt.Fprintf(out, "%s %s %s\n", modeLabel(s), formatClock(s.RemainingSeconds), state)
	if s.Mode == domain.ModeFocus {
		fmt.Fprintf(out, "%s\n", styleMuted.Render(
			fmt.Sprintf("streak %d, long break in %d focus sessions", s.Streak, a.Pomo.CyclesUntilLongBreak(s))))
	}
	if s.TaskID != "" {
		if t, ok := a.Tasks.Get(s.TaskID); ok {
			fmt.Fprintf(out, "working on: %s\n", t.Title)
		}
	}
}

func modeLabel(s pomodoro.State) string {
	switch {
	case s.Mode == domain.ModeFocus:
		return styleTitle.Render("focus")
	case s.IsLongBreak:
		return styleWarning.Render("long break")
	default:
		return styleWarning.Render("break")
	}
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
