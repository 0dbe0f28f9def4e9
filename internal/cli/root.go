// Package cli provides the command-line interface for tempo.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/focusfoundry/tempo/internal/config"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// DataDir overrides the store directory from the config.
	DataDir string
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", "", "override the data directory")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// newRootCmd creates the root command and wires the App into the
// command context for subcommands.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	var app *App

	cmd := &cobra.Command{
		Use:   "tempo",
		Short: "tempo - task, focus, and momentum tracking",
		Long: `tempo tracks tasks, pomodoro sessions, and the momentum you build
from both: weekly levels, trophies, XP, streaks, and goal progress.

Everything is stored locally as JSON; cloud sync and webhook
notifications are optional.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if flags.DataDir != "" {
				cfg.Data.Dir = flags.DataDir
			}

			logger := InitLogger(flags.Verbose, flags.Quiet, cfg.Log)
			CheckNoColor()

			app, err = newApp(cmd.Context(), cfg, logger, cmd.OutOrStdout())
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			CloseLogFile()
		},
		// Errors are rendered by Execute; repeating usage adds noise.
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)

	appFn := func() *App { return app }
	cmd.AddCommand(
		newInitCmd(),
		newTaskCmd(appFn),
		newPomoCmd(appFn),
		newStatsCmd(appFn),
		newLevelCmd(appFn),
		newStreakCmd(appFn),
		newAchievementsCmd(appFn),
		newNotesCmd(appFn),
		newExportCmd(appFn),
		newSyncCmd(appFn),
		newRulesCmd(appFn),
	)
	return cmd
}

func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build
// info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("error: "+err.Error()))
		return err
	}
	return nil
}
