// Package gamification turns task history into levels, trophies, goal
// celebrations and streaks. Weekly evaluation is the only stateful part;
// XP, streaks and achievements are recomputed from scratch on every read
// so editing old tasks retroactively corrects them, while past weekly
// level-ups stay pinned in the persisted state.
package gamification

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/automation"
	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/kvstore"
	"github.com/focusfoundry/tempo/internal/stats"
)

// Store keys for the persisted gamification records.
const (
	StateKey  = "app.gamification"
	ClaimsKey = "app.goals.claims"
)

// Goals carries the user-configured completion targets. A zero target
// disables claiming for that period.
type Goals struct {
	Weekly  int
	Monthly int
}

// Engine evaluates weekly progression and goal claims against the task
// collection.
type Engine struct {
	store  kvstore.Store
	clock  clock.Clock
	logger zerolog.Logger
	sink   automation.Sink
	goals  Goals
}

// NewEngine creates an Engine. A nil sink drops goal celebrations.
func NewEngine(store kvstore.Store, clk clock.Clock, logger zerolog.Logger, sink automation.Sink, goals Goals) *Engine {
	return &Engine{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "gamification").Logger(),
		sink:   sink,
		goals:  goals,
	}
}

// State returns the persisted weekly progression, falling back to the
// fresh-install default on a missing or corrupt value.
func (e *Engine) State() domain.GamificationState {
	state := domain.NewGamificationState()
	e.store.Get(StateKey, &state)
	if state.CurrentLevel < 1 {
		state.CurrentLevel = 1
	}
	return state
}

// EvaluateWeek runs the weekly level evaluation if the most recently
// completed week has not been evaluated yet. The windows come from the
// evaluation clock, never from a display anchor, so browsing past months
// cannot re-trigger or skip an evaluation. Returns the resulting state
// and whether an evaluation actually ran.
//
// The level increments exactly when last week's completed count strictly
// exceeds the week before's. Each week is evaluated at most once,
// permanently recorded.
func (e *Engine) EvaluateWeek(tasks []domain.Task) (domain.GamificationState, bool, error) {
	state := e.State()
	windows := stats.WindowsAt(e.clock.Now())
	if state.LastEvaluatedWeek == windows.LastWeekKey {
		return state, false, nil
	}

	lastDone := stats.CountCompletedInRange(tasks, windows.LastWeekStart, windows.LastWeekEnd)
	prevDone := stats.CountCompletedInRange(tasks, windows.WeekBeforeLastStart, windows.WeekBeforeLastEnd)

	if lastDone > prevDone {
		state.CurrentLevel++
	}
	if lastDone > state.BestWeeklyCompleted {
		state.BestWeeklyCompleted = lastDone
	}
	state.LastEvaluatedWeek = windows.LastWeekKey
	state.History = append(state.History, domain.WeekResult{
		Week:       windows.LastWeekKey,
		Completed:  lastDone,
		LevelAfter: state.CurrentLevel,
		Trophy:     domain.TrophyForCount(lastDone),
	})
	if len(state.History) > domain.HistoryLimit {
		state.History = state.History[len(state.History)-domain.HistoryLimit:]
	}

	if err := e.store.Set(StateKey, state); err != nil {
		return state, false, err
	}
	e.logger.Info().
		Str("week", windows.LastWeekKey).
		Int("completed", lastDone).
		Int("level", state.CurrentLevel).
		Msg("week evaluated")
	return state, true, nil
}

// Claims returns the recorded goal claims.
func (e *Engine) Claims() domain.GoalClaims {
	var claims domain.GoalClaims
	e.store.Get(ClaimsKey, &claims)
	return claims
}

// ClaimGoals checks whether the current week's or month's completed
// count has crossed its configured target and, if so, fires a one-time
// celebration per period key. Re-running within the same period is a
// no-op once claimed.
func (e *Engine) ClaimGoals(tasks []domain.Task) (domain.GoalClaims, error) {
	claims := e.Claims()
	now := e.clock.Now()
	changed := false

	if e.goals.Weekly > 0 {
		weekKey := stats.WeekKey(now)
		if claims.WeekClaimed != weekKey {
			start := stats.WeekStart(now)
			done := stats.CountCompletedInRange(tasks, start, stats.WeekEnd(start))
			if done >= e.goals.Weekly {
				claims.WeekClaimed = weekKey
				changed = true
				e.emit(fmt.Sprintf("Weekly goal reached: %d tasks completed", done))
			}
		}
	}
	if e.goals.Monthly > 0 {
		monthKey := stats.MonthKey(now)
		if claims.MonthClaimed != monthKey {
			done := stats.CountCompletedInRange(tasks, stats.MonthStart(now), stats.MonthEnd(now))
			if done >= e.goals.Monthly {
				claims.MonthClaimed = monthKey
				changed = true
				e.emit(fmt.Sprintf("Monthly goal reached: %d tasks completed", done))
			}
		}
	}

	if changed {
		if err := e.store.Set(ClaimsKey, claims); err != nil {
			return claims, err
		}
	}
	return claims, nil
}

func (e *Engine) emit(message string) {
	if e.sink != nil {
		e.sink.Emit(automation.Event{Kind: automation.KindSuccess, Message: message})
	}
}

// streakLookbackDays bounds the backward walk so a pathological history
// never produces an unbounded scan.
const streakLookbackDays = 365

// Streak counts consecutive calendar days, walking backward from today,
// on which at least one task was completed. The walk stops at the first
// day without a completion.
func (e *Engine) Streak(tasks []domain.Task) int {
	loc := e.clock.Now().Location()
	days := make(map[string]struct{})
	for _, t := range tasks {
		if d, ok := stats.CompletedDate(t, loc); ok {
			days[d.Format(domain.DateLayout)] = struct{}{}
		}
	}

	streak := 0
	day := e.clock.Now()
	for i := 0; i < streakLookbackDays; i++ {
		if _, ok := days[day.Format(domain.DateLayout)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
