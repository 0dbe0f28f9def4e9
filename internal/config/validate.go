package config

import (
	"net/url"

	"github.com/focusfoundry/tempo/internal/errors"
)

// validLogLevels are the accepted log.level values.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration and normalizes it in place:
// pomodoro durations are clamped into their ranges rather than
// rejected, matching how the settings UI treats out-of-range input.
//
// Hard failures:
//   - negative goal targets
//   - a cloud base URL that is not https
//   - an unknown log level
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	cfg.Pomodoro = cfg.Pomodoro.Clamp()

	if cfg.Goals.Weekly < 0 || cfg.Goals.Monthly < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "goal targets must not be negative")
	}

	if cfg.Cloud.BaseURL != "" {
		u, err := url.Parse(cfg.Cloud.BaseURL)
		if err != nil {
			return errors.Wrap(errors.ErrInvalidConfig, "cloud.base_url is not a valid URL")
		}
		if u.Scheme != "https" {
			return errors.Wrap(errors.ErrInvalidConfig, "cloud.base_url must use https")
		}
	}

	if cfg.Log.Level != "" && !validLogLevels[cfg.Log.Level] {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown log level %q", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB < 1 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups < 0 {
		cfg.Log.MaxBackups = 0
	}
	return nil
}
