// Package config loads and validates the layered tempo configuration.
// Precedence, highest first: environment variables (TEMPO_*), project
// config (.tempo/config.yaml), global config (~/.tempo/config.yaml),
// built-in defaults.
package config

import (
	"github.com/focusfoundry/tempo/internal/pomodoro"
)

// Config is the root configuration structure.
type Config struct {
	// Data controls where the key-value store lives.
	Data DataConfig `mapstructure:"data"`

	// Pomodoro holds the timer settings; values are clamped on load.
	Pomodoro pomodoro.Config `mapstructure:"pomodoro"`

	// Goals holds the completion targets used for goal claiming. Zero
	// disables a target.
	Goals GoalsConfig `mapstructure:"goals"`

	// Cloud configures the optional sync endpoint.
	Cloud CloudConfig `mapstructure:"cloud"`

	// Notify configures the optional webhook channels.
	Notify NotifyConfig `mapstructure:"notify"`

	// Log controls logger verbosity and the optional rotating file sink.
	Log LogConfig `mapstructure:"log"`
}

// DataConfig locates the persistent store.
type DataConfig struct {
	// Dir is the store directory. Empty means ~/.tempo/data.
	Dir string `mapstructure:"dir"`
}

// GoalsConfig holds the weekly and monthly completion targets.
type GoalsConfig struct {
	Weekly  int `mapstructure:"weekly"`
	Monthly int `mapstructure:"monthly"`
}

// CloudConfig configures the sync adapter. An empty BaseURL disables
// sync entirely.
type CloudConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// NotifyConfig configures webhook notification channels. Unset channels
// are skipped.
type NotifyConfig struct {
	DiscordWebhookURL string `mapstructure:"discord_webhook_url"`
	TelegramBotToken  string `mapstructure:"telegram_bot_token"`
	TelegramChatID    string `mapstructure:"telegram_chat_id"`
}

// LogConfig controls logger output.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// File enables a rotating file sink when non-empty.
	File string `mapstructure:"file"`

	// MaxSizeMB and MaxBackups bound the rotating file sink.
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
}
