package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/focusfoundry/tempo/internal/config"
	"github.com/focusfoundry/tempo/internal/errors"
)

// scaffoldConfig is the YAML shape written by tempo init. Field names
// match the mapstructure keys read by internal/config.Load.
type scaffoldConfig struct {
	Data     scaffoldData    `yaml:"data"`
	Pomodoro scaffoldPomo    `yaml:"pomodoro"`
	Goals    scaffoldGoals   `yaml:"goals"`
	Cloud    scaffoldCloud   `yaml:"cloud"`
	Notify   scaffoldNotify  `yaml:"notify"`
	Log      scaffoldLogging `yaml:"log"`
}

type scaffoldData struct {
	Dir string `yaml:"dir,omitempty"`
}

type scaffoldPomo struct {
	FocusMinutes      int  `yaml:"focus_minutes"`
	ShortBreakMinutes int  `yaml:"short_break_minutes"`
	LongBreakMinutes  int  `yaml:"long_break_minutes"`
	LongBreakEvery    int  `yaml:"long_break_every"`
	AutoStartNext     bool `yaml:"auto_start_next"`
	Sound             bool `yaml:"sound"`
	Vibrate           bool `yaml:"vibrate"`
	DesktopNotify     bool `yaml:"desktop_notify"`
	DailyGoalMinutes  int  `yaml:"daily_goal_minutes"`
}

type scaffoldGoals struct {
	Weekly  int `yaml:"weekly"`
	Monthly int `yaml:"monthly"`
}

type scaffoldCloud struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

type scaffoldNotify struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url,omitempty"`
	TelegramBotToken  string `yaml:"telegram_bot_token,omitempty"`
	TelegramChatID    string `yaml:"telegram_chat_id,omitempty"`
}

type scaffoldLogging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func newInitCmd() *cobra.Command {
	var project bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file with the default settings.

By default the file goes to ~/.tempo/config.yaml and applies everywhere.
With --project it goes to .tempo/config.yaml in the current directory and
overrides the global file when tempo runs from here.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initConfigPath(project)
			if err != nil {
				return err
			}
			if err := writeScaffold(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("wrote"), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "write .tempo/config.yaml in the current directory")
	return cmd
}

func initConfigPath(project bool) (string, error) {
	if project {
		return config.ProjectConfigPath(), nil
	}
	path, err := config.GlobalConfigPath()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve config path")
	}
	return path, nil
}

// writeScaffold writes the default config to path, backing up any
// existing file first.
func writeScaffold(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if _, err := os.Stat(path); err == nil {
		prev, readErr := os.ReadFile(path) //nolint:gosec // path is our own config file
		if readErr == nil {
			_ = os.WriteFile(path+".backup", prev, 0o600)
		}
	}

	defaults := config.DefaultConfig()
	scaffold := scaffoldConfig{
		Pomodoro: scaffoldPomo{
			FocusMinutes:      defaults.Pomodoro.FocusMinutes,
			ShortBreakMinutes: defaults.Pomodoro.ShortBreakMinutes,
			LongBreakMinutes:  defaults.Pomodoro.LongBreakMinutes,
			LongBreakEvery:    defaults.Pomodoro.LongBreakEvery,
			AutoStartNext:     defaults.Pomodoro.AutoStartNext,
			Sound:             defaults.Pomodoro.Sound,
			Vibrate:           defaults.Pomodoro.Vibrate,
			DesktopNotify:     defaults.Pomodoro.DesktopNotify,
			DailyGoalMinutes:  defaults.Pomodoro.DailyGoalMinutes,
		},
		Goals: scaffoldGoals{
			Weekly:  defaults.Goals.Weekly,
			Monthly: defaults.Goals.Monthly,
		},
		Log: scaffoldLogging{
			Level:      defaults.Log.Level,
			MaxSizeMB:  defaults.Log.MaxSizeMB,
			MaxBackups: defaults.Log.MaxBackups,
		},
	}

	data, err := yaml.Marshal(scaffold)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	header := fmt.Sprintf("# tempo configuration\n# Generated by tempo init on %s\n\n",
		time.Now().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(header+string(data)), 0o600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}
