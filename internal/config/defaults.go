package config

import (
	"github.com/spf13/viper"

	"github.com/focusfoundry/tempo/internal/pomodoro"
)

// DefaultConfig returns a new Config with working out-of-the-box values.
// These form the base layer overridden by config files and environment
// variables.
func DefaultConfig() *Config {
	return &Config{
		Pomodoro: pomodoro.DefaultConfig(),
		Goals: GoalsConfig{
			// Zero targets keep goal claiming quiet until the user opts in.
			Weekly:  0,
			Monthly: 0,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// setDefaults registers the default values on a viper instance so they
// survive partial config files.
func setDefaults(v *viper.Viper) {
	pomo := pomodoro.DefaultConfig()
	v.SetDefault("pomodoro.focus_minutes", pomo.FocusMinutes)
	v.SetDefault("pomodoro.short_break_minutes", pomo.ShortBreakMinutes)
	v.SetDefault("pomodoro.long_break_minutes", pomo.LongBreakMinutes)
	v.SetDefault("pomodoro.long_break_every", pomo.LongBreakEvery)
	v.SetDefault("pomodoro.auto_start_next", pomo.AutoStartNext)
	v.SetDefault("pomodoro.sound", pomo.Sound)
	v.SetDefault("pomodoro.vibrate", pomo.Vibrate)
	v.SetDefault("pomodoro.desktop_notify", pomo.DesktopNotify)
	v.SetDefault("pomodoro.daily_goal_minutes", pomo.DailyGoalMinutes)

	v.SetDefault("data.dir", "")

	v.SetDefault("goals.weekly", 0)
	v.SetDefault("goals.monthly", 0)

	v.SetDefault("cloud.base_url", "")

	v.SetDefault("notify.discord_webhook_url", "")
	v.SetDefault("notify.telegram_bot_token", "")
	v.SetDefault("notify.telegram_chat_id", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}
