// Package pomodoro implements the focus-timer state machine. The
// running countdown is an absolute end timestamp rather than a ticking
// counter, so a suspended process resumes with the correct remaining
// time instead of drifting by missed ticks.
package pomodoro

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/kvstore"
)

// Store keys for the persisted timer records.
const (
	StateKey    = "app.pomodoro"
	SessionsKey = "app.pomodoro.sessions"
)

// State is the persisted timer snapshot.
type State struct {
	// Mode is the current interval kind (focus or break).
	Mode domain.SessionMode `json:"mode"`

	// IsLongBreak is meaningful only while Mode is break.
	IsLongBreak bool `json:"is_long_break,omitempty"`

	// RemainingSeconds is the frozen countdown while paused; while
	// running it is a cache refreshed from EndAt on every tick.
	RemainingSeconds int `json:"remaining_seconds"`

	// Running reports whether the countdown is live.
	Running bool `json:"running"`

	// EndAt is the absolute instant the running countdown ends. Nil
	// while stopped.
	EndAt *time.Time `json:"end_at,omitempty"`

	// Streak counts focus intervals completed since the last long break.
	Streak int `json:"streak"`

	// TaskID optionally binds logged sessions to a task.
	TaskID string `json:"task_id,omitempty"`
}

// Effects are the best-effort side effects fired on interval
// completion. Implementations may fail or panic freely; the engine
// guards every call so a broken effect never blocks a transition.
type Effects interface {
	Sound()
	Vibrate()
	Notify(title, body string)
}

// NoopEffects discards all effects.
type NoopEffects struct{}

func (NoopEffects) Sound()             {}
func (NoopEffects) Vibrate()           {}
func (NoopEffects) Notify(_, _ string) {}

// Engine drives the timer against the persisted store. All transitions
// go through a load-modify-save cycle behind a mutex.
type Engine struct {
	store   kvstore.Store
	clock   clock.Clock
	logger  zerolog.Logger
	effects Effects
	cfg     Config

	mu sync.Mutex
}

// NewEngine creates an Engine with cfg clamped into range. Nil effects
// are replaced with NoopEffects.
func NewEngine(store kvstore.Store, clk clock.Clock, logger zerolog.Logger, effects Effects, cfg Config) *Engine {
	if effects == nil {
		effects = NoopEffects{}
	}
	return &Engine{
		store:   store,
		clock:   clk,
		logger:  logger.With().Str("component", "pomodoro").Logger(),
		effects: effects,
		cfg:     cfg.Clamp(),
	}
}

// Config returns the engine's clamped configuration.
func (e *Engine) Config() Config { return e.cfg }

// State returns the persisted snapshot, falling back to a stopped
// full-length focus interval.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load()
}

// Start begins (or resumes) the countdown from the current remaining
// time. Starting an already-running timer refreshes the end timestamp
// from the cached remaining seconds.
func (e *Engine) Start() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.load()
	remaining := s.RemainingSeconds
	if remaining < 1 {
		remaining = 1
	}
	end := e.clock.Now().Add(time.Duration(remaining) * time.Second)
	s.Running = true
	s.EndAt = &end
	return s, e.save(s)
}

// Pause freezes the countdown, converting the end timestamp back into
// remaining seconds.
func (e *Engine) Pause() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.load()
	if s.EndAt != nil {
		s.RemainingSeconds = remainingAt(*s.EndAt, e.clock.Now())
	}
	s.Running = false
	s.EndAt = nil
	return s, e.save(s)
}

// Reset stops the timer and reloads the full duration of the current
// interval.
func (e *Engine) Reset() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.load()
	s.Running = false
	s.EndAt = nil
	s.RemainingSeconds = e.durationSeconds(s.Mode, s.IsLongBreak)
	return s, e.save(s)
}

// Skip advances to the next interval without logging a session; that is
// the whole distinction from natural completion. Skipping out of focus
// peeks at what the streak would become to pick a short or long break,
// but the streak itself only moves on natural completion. A running
// timer keeps running into the skipped-to interval.
func (e *Engine) Skip() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.load()
	if s.Mode == domain.ModeFocus {
		s.Mode = domain.ModeBreak
		s.IsLongBreak = (s.Streak+1)%e.cfg.LongBreakEvery == 0
	} else {
		s.Mode = domain.ModeFocus
		s.IsLongBreak = false
	}
	s.RemainingSeconds = e.durationSeconds(s.Mode, s.IsLongBreak)
	if s.Running {
		end := e.clock.Now().Add(time.Duration(s.RemainingSeconds) * time.Second)
		s.EndAt = &end
	} else {
		s.EndAt = nil
	}
	return s, e.save(s)
}

// SelectTask binds subsequent logged sessions to the given task id. An
// empty id clears the binding.
func (e *Engine) SelectTask(id string) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.load()
	s.TaskID = id
	return s, e.save(s)
}

// Tick recomputes remaining time from the end timestamp. When the
// countdown reaches zero it logs the finished session, fires effects,
// and rolls into the next interval (auto-started or loaded and
// stopped). Ticks on a stopped timer are no-ops.
func (e *Engine) Tick() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.load()
	if !s.Running || s.EndAt == nil {
		return s, nil
	}
	s.RemainingSeconds = remainingAt(*s.EndAt, e.clock.Now())
	if s.RemainingSeconds > 0 {
		return s, e.save(s)
	}
	return e.complete(s)
}

// complete handles a natural interval completion: log the full-length
// session, fire effects, advance the mode, and start or load the next
// interval.
func (e *Engine) complete(s State) (State, error) {
	finished := s.Mode
	wasLong := s.IsLongBreak
	dur := e.durationSeconds(finished, wasLong)
	now := e.clock.Now()

	if err := e.appendSession(domain.Session{
		ID:      uuid.NewString(),
		Date:    now.Format(domain.DateLayout),
		Mode:    finished,
		Seconds: dur,
		TaskID:  s.TaskID,
	}); err != nil {
		return s, err
	}
	e.fireEffects(finished, wasLong)

	if finished == domain.ModeFocus {
		s.Streak++
		s.Mode = domain.ModeBreak
		s.IsLongBreak = s.Streak%e.cfg.LongBreakEvery == 0
	} else {
		s.Mode = domain.ModeFocus
		s.IsLongBreak = false
		if wasLong {
			s.Streak = 0
		}
	}
	s.RemainingSeconds = e.durationSeconds(s.Mode, s.IsLongBreak)

	if e.cfg.AutoStartNext {
		end := now.Add(time.Duration(s.RemainingSeconds) * time.Second)
		s.Running = true
		s.EndAt = &end
	} else {
		s.Running = false
		s.EndAt = nil
	}

	e.logger.Info().
		Str("finished", string(finished)).
		Bool("was_long_break", wasLong).
		Int("streak", s.Streak).
		Str("next", string(s.Mode)).
		Msg("interval completed")
	return s, e.save(s)
}

// fireEffects runs the configured completion effects, each guarded so
// one failing effect blocks neither the others nor the transition.
func (e *Engine) fireEffects(finished domain.SessionMode, wasLong bool) {
	if e.cfg.Sound {
		e.guard("sound", e.effects.Sound)
	}
	if e.cfg.Vibrate {
		e.guard("vibrate", e.effects.Vibrate)
	}
	if e.cfg.DesktopNotify {
		title, body := completionMessage(finished, wasLong)
		e.guard("notify", func() { e.effects.Notify(title, body) })
	}
}

func (e *Engine) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Str("effect", name).Interface("panic", r).Msg("effect failed")
		}
	}()
	fn()
}

func completionMessage(finished domain.SessionMode, wasLong bool) (title, body string) {
	if finished == domain.ModeFocus {
		return "Focus session complete", "Time for a break."
	}
	if wasLong {
		return "Long break complete", "Back to focus!"
	}
	return "Break complete", "Back to focus!"
}

// Sessions returns the logged session history, oldest first.
func (e *Engine) Sessions() []domain.Session {
	var sessions []domain.Session
	e.store.Get(SessionsKey, &sessions)
	return sessions
}

func (e *Engine) appendSession(s domain.Session) error {
	sessions := e.Sessions()
	sessions = append(sessions, s)
	return e.store.Set(SessionsKey, sessions)
}

// TodayStats summarizes the current day's logged sessions.
type TodayStats struct {
	FocusMinutes int `json:"focus_minutes"`
	BreakMinutes int `json:"break_minutes"`
	Sessions     int `json:"sessions"`
}

// Today aggregates sessions logged on the current calendar day.
func (e *Engine) Today() TodayStats {
	today := e.clock.Now().Format(domain.DateLayout)
	var stats TodayStats
	focusSec, breakSec := 0, 0
	for _, s := range e.Sessions() {
		if s.Date != today {
			continue
		}
		stats.Sessions++
		if s.Mode == domain.ModeFocus {
			focusSec += s.Seconds
		} else {
			breakSec += s.Seconds
		}
	}
	stats.FocusMinutes = (focusSec + 30) / 60
	stats.BreakMinutes = (breakSec + 30) / 60
	return stats
}

// CyclesUntilLongBreak reports how many focus intervals remain before
// the next long break, 0 meaning the next break is (or the current
// break already is) the long one.
func (e *Engine) CyclesUntilLongBreak(s State) int {
	every := e.cfg.LongBreakEvery
	if s.IsLongBreak {
		return 0
	}
	if s.Mode == domain.ModeFocus {
		return every - (s.Streak%every + 1)
	}
	return every - s.Streak%every
}

func (e *Engine) load() State {
	s := State{
		Mode:             domain.ModeFocus,
		RemainingSeconds: e.cfg.FocusMinutes * 60,
	}
	e.store.Get(StateKey, &s)
	if !s.Mode.IsValid() {
		s.Mode = domain.ModeFocus
		s.IsLongBreak = false
	}
	return s
}

func (e *Engine) save(s State) error {
	return e.store.Set(StateKey, s)
}

func (e *Engine) durationSeconds(mode domain.SessionMode, isLong bool) int {
	switch {
	case mode == domain.ModeFocus:
		return e.cfg.FocusMinutes * 60
	case isLong:
		return e.cfg.LongBreakMinutes * 60
	default:
		return e.cfg.ShortBreakMinutes * 60
	}
}

// remainingAt converts an end timestamp to whole remaining seconds,
// rounded to nearest and floored at zero.
func remainingAt(end, now time.Time) int {
	r := int(end.Sub(now).Round(time.Second) / time.Second)
	if r < 0 {
		return 0
	}
	return r
}
