package pomodoro

// Config holds the user-adjustable timer settings. Durations are
// minutes. Every numeric field has a hard range; Clamp forces any
// loaded value into it so a hand-edited config file cannot produce a
// zero-length or runaway interval.
type Config struct {
	FocusMinutes      int  `json:"focus_minutes" mapstructure:"focus_minutes"`
	ShortBreakMinutes int  `json:"short_break_minutes" mapstructure:"short_break_minutes"`
	LongBreakMinutes  int  `json:"long_break_minutes" mapstructure:"long_break_minutes"`
	LongBreakEvery    int  `json:"long_break_every" mapstructure:"long_break_every"`
	AutoStartNext     bool `json:"auto_start_next" mapstructure:"auto_start_next"`
	Sound             bool `json:"sound" mapstructure:"sound"`
	Vibrate           bool `json:"vibrate" mapstructure:"vibrate"`
	DesktopNotify     bool `json:"desktop_notify" mapstructure:"desktop_notify"`
	DailyGoalMinutes  int  `json:"daily_goal_minutes" mapstructure:"daily_goal_minutes"`
}

// Numeric ranges for Config fields.
const (
	MinFocusMinutes = 5
	MaxFocusMinutes = 120

	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 60

	MinLongBreakMinutes = 5
	MaxLongBreakMinutes = 60

	MinLongBreakEvery = 1
	MaxLongBreakEvery = 12

	MinDailyGoalMinutes = 15
	MaxDailyGoalMinutes = 600
)

// DefaultConfig returns the out-of-the-box timer settings.
func DefaultConfig() Config {
	return Config{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakEvery:    4,
		AutoStartNext:     true,
		Sound:             true,
		Vibrate:           true,
		DesktopNotify:     true,
		DailyGoalMinutes:  120,
	}
}

// Clamp returns a copy of c with every numeric field forced into its
// range. Clamp is total and idempotent.
func (c Config) Clamp() Config {
	c.FocusMinutes = clampInt(c.FocusMinutes, MinFocusMinutes, MaxFocusMinutes)
	c.ShortBreakMinutes = clampInt(c.ShortBreakMinutes, MinShortBreakMinutes, MaxShortBreakMinutes)
	c.LongBreakMinutes = clampInt(c.LongBreakMinutes, MinLongBreakMinutes, MaxLongBreakMinutes)
	c.LongBreakEvery = clampInt(c.LongBreakEvery, MinLongBreakEvery, MaxLongBreakEvery)
	c.DailyGoalMinutes = clampInt(c.DailyGoalMinutes, MinDailyGoalMinutes, MaxDailyGoalMinutes)
	return c
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
