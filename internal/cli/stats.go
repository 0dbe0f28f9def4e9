package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/stats"
)

const statsBarWidth = 24

func newStatsCmd(appFn func() *App) *cobra.Command {
	var (
		rangeName  string
		cumulative bool
		focus      bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Productivity charts for a daily, weekly, or monthly window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()
			tasks := a.Tasks.List()
			anchor := a.Clock.Now()

			var buckets []stats.Bucket
			switch rangeName {
			case "daily":
				buckets = stats.DailyBuckets(tasks, anchor)
			case "weekly":
				buckets = stats.WeeklyBuckets(tasks, anchor)
			case "monthly":
				buckets = stats.MonthlyBuckets(tasks, anchor)
			default:
				return errors.Wrapf(errors.ErrInvalidInput, "unknown range %q", rangeName)
			}

			if focus {
				printFocusBuckets(out, stats.FocusMinutes(a.Pomo.Sessions(), buckets))
				return nil
			}
			if cumulative {
				printCumulativeBuckets(out, stats.Cumulative(buckets))
				return nil
			}
			printBuckets(out, buckets)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rangeName, "range", "r", "weekly", "window (daily|weekly|monthly)")
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "show running totals instead of per-bucket counts")
	cmd.Flags().BoolVar(&focus, "focus", false, "show focus minutes instead of task counts")
	return cmd
}

func printBuckets(out io.Writer, buckets []stats.Bucket) {
	maxDone := 1
	for _, b := range buckets {
		if b.Done > maxDone {
			maxDone = b.Done
		}
	}
	for _, b := range buckets {
		fmt.Fprintf(out, "%-4s %s %s\n",
			b.Label,
			bar(b.Done, maxDone),
			styleMuted.Render(fmt.Sprintf("%d done / %d created", b.Done, b.Created)))
	}
}

func printCumulativeBuckets(out io.Writer, buckets []stats.CumulativeBucket) {
	maxDone := 1
	for _, b := range buckets {
		if b.DoneCum > maxDone {
			maxDone = b.DoneCum
		}
	}
	for _, b := range buckets {
		fmt.Fprintf(out, "%-4s %s %s\n",
			b.Label,
			bar(b.DoneCum, maxDone),
			styleMuted.Render(fmt.Sprintf("%d done / %d created", b.DoneCum, b.CreatedCum)))
	}
}

func printFocusBuckets(out io.Writer, buckets []stats.FocusBucket) {
	maxMinutes := 1
	for _, b := range buckets {
		if b.Minutes > maxMinutes {
			maxMinutes = b.Minutes
		}
	}
	for _, b := range buckets {
		fmt.Fprintf(out, "%-4s %s %s\n",
			b.Label,
			bar(b.Minutes, maxMinutes),
			styleMuted.Render(fmt.Sprintf("%dm", b.Minutes)))
	}
}

func bar(value, peak int) string {
	if peak < 1 {
		peak = 1
	}
	filled := value * statsBarWidth / peak
	if value > 0 && filled == 0 {
		filled = 1
	}
	return styleSuccess.Render(strings.Repeat("█", filled)) +
		styleMuted.Render(strings.Repeat("░", statsBarWidth-filled))
}
