package domain

// SessionMode distinguishes focus intervals from breaks in the pomodoro
// session log.
type SessionMode string

// Session mode constants.
const (
	ModeFocus SessionMode = "focus"
	ModeBreak SessionMode = "break"
)

// IsValid checks if the mode is a valid value.
func (m SessionMode) IsValid() bool {
	return m == ModeFocus || m == ModeBreak
}

// Session is an immutable log record of a completed pomodoro interval.
// Sessions are created only when a countdown reaches zero naturally
// (skipped intervals are never logged) and accumulate as an append-only
// log. This log is the sole source for focus-time aggregates.
type Session struct {
	// ID is the unique identifier for the session.
	ID string `json:"id"`

	// Date is the civil date the session ended ("2006-01-02").
	Date string `json:"date"`

	// Mode records whether the interval was focus or break.
	Mode SessionMode `json:"mode"`

	// Seconds is the duration of the completed interval.
	Seconds int `json:"seconds"`

	// TaskID optionally links the session to a task. The link is purely
	// informational and not enforced against the task collection.
	TaskID string `json:"task_id,omitempty"`
}
