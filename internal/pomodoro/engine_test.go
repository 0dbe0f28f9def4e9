package pomodoro

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/kvstore"
)

func newTestTimer(t *testing.T, cfg Config) (*Engine, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	return NewEngine(kvstore.NewMemStore(), mock, zerolog.Nop(), nil, cfg), mock
}

func TestClampRanges(t *testing.T) {
	clamped := Config{
		FocusMinutes:      0,
		ShortBreakMinutes: 999,
		LongBreakMinutes:  -3,
		LongBreakEvery:    0,
		DailyGoalMinutes:  1000,
	}.Clamp()

	assert.Equal(t, MinFocusMinutes, clamped.FocusMinutes)
	assert.Equal(t, MaxShortBreakMinutes, clamped.ShortBreakMinutes)
	assert.Equal(t, MinLongBreakMinutes, clamped.LongBreakMinutes)
	assert.Equal(t, MinLongBreakEvery, clamped.LongBreakEvery)
	assert.Equal(t, MaxDailyGoalMinutes, clamped.DailyGoalMinutes)

	assert.Equal(t, clamped, clamped.Clamp(), "clamp is idempotent")
	assert.Equal(t, DefaultConfig(), DefaultConfig().Clamp(), "defaults are in range")
}

func TestInitialState(t *testing.T) {
	engine, _ := newTestTimer(t, DefaultConfig())

	s := engine.State()
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, 25*60, s.RemainingSeconds)
	assert.False(t, s.Running)
	assert.Nil(t, s.EndAt)
	assert.Zero(t, s.Streak)
}

func TestStartPauseResume(t *testing.T) {
	engine, mock := newTestTimer(t, DefaultConfig())

	s, err := engine.Start()
	require.NoError(t, err)
	assert.True(t, s.Running)
	require.NotNil(t, s.EndAt)
	assert.Equal(t, mock.Now().Add(25*time.Minute), *s.EndAt)

	// Ten minutes in, pause freezes the remainder and drops the end
	// timestamp.
	mock.Advance(10 * time.Minute)
	s, err = engine.Pause()
	require.NoError(t, err)
	assert.False(t, s.Running)
	assert.Nil(t, s.EndAt)
	assert.Equal(t, 15*60, s.RemainingSeconds)

	// A long pause costs nothing: resuming re-anchors the end timestamp
	// to the frozen remainder.
	mock.Advance(2 * time.Hour)
	s, err = engine.Start()
	require.NoError(t, err)
	assert.Equal(t, mock.Now().Add(15*time.Minute), *s.EndAt)
}

func TestTickRecomputesFromEndTimestamp(t *testing.T) {
	engine, mock := newTestTimer(t, DefaultConfig())

	_, err := engine.Start()
	require.NoError(t, err)

	// The process being descheduled for 20 minutes loses no accuracy.
	mock.Advance(20 * time.Minute)
	s, err := engine.Tick()
	require.NoError(t, err)
	assert.Equal(t, 5*60, s.RemainingSeconds)
	assert.True(t, s.Running)
	assert.Empty(t, engine.Sessions())
}

func TestNaturalCompletionLogsFullSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoStartNext = false
	engine, mock := newTestTimer(t, cfg)

	_, err := engine.SelectTask("task-1")
	require.NoError(t, err)
	_, err = engine.Start()
	require.NoError(t, err)

	mock.Advance(25 * time.Minute)
	s, err := engine.Tick()
	require.NoError(t, err)

	sessions := engine.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "2026-09-01", sessions[0].Date)
	assert.Equal(t, domain.ModeFocus, sessions[0].Mode)
	assert.Equal(t, 25*60, sessions[0].Seconds, "logged at full duration")
	assert.Equal(t, "task-1", sessions[0].TaskID)

	assert.Equal(t, domain.ModeBreak, s.Mode)
	assert.False(t, s.IsLongBreak)
	assert.Equal(t, 1, s.Streak)
	assert.False(t, s.Running, "auto-start disabled loads the break stopped")
	assert.Equal(t, 5*60, s.RemainingSeconds)
}

func TestAutoStartRollsStraightIntoBreak(t *testing.T) {
	engine, mock := newTestTimer(t, DefaultConfig())

	_, err := engine.Start()
	require.NoError(t, err)
	mock.Advance(25 * time.Minute)

	s, err := engine.Tick()
	require.NoError(t, err)
	assert.True(t, s.Running)
	require.NotNil(t, s.EndAt)
	assert.Equal(t, mock.Now().Add(5*time.Minute), *s.EndAt)
}

// runInterval drives the engine through one natural completion.
func runInterval(t *testing.T, engine *Engine, mock *clock.Mock) State {
	t.Helper()
	s := engine.State()
	if !s.Running {
		var err error
		s, err = engine.Start()
		require.NoError(t, err)
	}
	mock.Advance(time.Duration(s.RemainingSeconds) * time.Second)
	s, err := engine.Tick()
	require.NoError(t, err)
	return s
}

func TestLongBreakCadenceAndStreakReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongBreakEvery = 2
	engine, mock := newTestTimer(t, cfg)

	// Focus 1 ends: short break.
	s := runInterval(t, engine, mock)
	assert.Equal(t, domain.ModeBreak, s.Mode)
	assert.False(t, s.IsLongBreak)
	assert.Equal(t, 1, s.Streak)

	// Short break ends: streak survives.
	s = runInterval(t, engine, mock)
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, 1, s.Streak)

	// Focus 2 ends: second focus triggers the long break.
	s = runInterval(t, engine, mock)
	assert.Equal(t, domain.ModeBreak, s.Mode)
	assert.True(t, s.IsLongBreak)
	assert.Equal(t, 2, s.Streak)

	// Long break ends: streak resets.
	s = runInterval(t, engine, mock)
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Zero(t, s.Streak)

	sessions := engine.Sessions()
	require.Len(t, sessions, 4)
	assert.Equal(t, 15*60, sessions[3].Seconds, "long break logged at long duration")
}

func TestSkipNeverLogsASession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongBreakEvery = 4
	engine, _ := newTestTimer(t, cfg)

	s, err := engine.Skip()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeBreak, s.Mode)
	assert.False(t, s.IsLongBreak, "streak 0, next would be 1 of 4")
	assert.Equal(t, 5*60, s.RemainingSeconds)
	assert.Zero(t, s.Streak, "skip does not advance the streak")
	assert.Empty(t, engine.Sessions())

	s, err = engine.Skip()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Empty(t, engine.Sessions())
}

func TestSkipPicksLongBreakFromUpcomingStreak(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongBreakEvery = 2
	engine, mock := newTestTimer(t, cfg)

	// One natural focus completion brings the streak to 1, then skipping
	// the break and finishing nothing leaves the next skip from focus
	// peeking at streak+1 = 2, which is the long-break boundary.
	runInterval(t, engine, mock)
	_, err := engine.Pause()
	require.NoError(t, err)
	_, err = engine.Skip() // break -> focus
	require.NoError(t, err)

	s, err := engine.Skip() // focus -> break, (1+1)%2 == 0
	require.NoError(t, err)
	assert.True(t, s.IsLongBreak)
	assert.Equal(t, 15*60, s.RemainingSeconds)
}

func TestSkipWhileRunningKeepsRunning(t *testing.T) {
	engine, mock := newTestTimer(t, DefaultConfig())

	_, err := engine.Start()
	require.NoError(t, err)

	s, err := engine.Skip()
	require.NoError(t, err)
	assert.True(t, s.Running)
	require.NotNil(t, s.EndAt)
	assert.Equal(t, mock.Now().Add(5*time.Minute), *s.EndAt)
}

func TestReset(t *testing.T) {
	engine, mock := newTestTimer(t, DefaultConfig())

	_, err := engine.Start()
	require.NoError(t, err)
	mock.Advance(10 * time.Minute)
	_, err = engine.Tick()
	require.NoError(t, err)

	s, err := engine.Reset()
	require.NoError(t, err)
	assert.False(t, s.Running)
	assert.Nil(t, s.EndAt)
	assert.Equal(t, 25*60, s.RemainingSeconds)
}

// panicEffects blows up on every call.
type panicEffects struct{}

func (panicEffects) Sound()             { panic("no audio device") }
func (panicEffects) Vibrate()           { panic("no vibration") }
func (panicEffects) Notify(_, _ string) { panic("no notification daemon") }

func TestEffectFailureNeverBlocksTransition(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	engine := NewEngine(kvstore.NewMemStore(), mock, zerolog.Nop(), panicEffects{}, DefaultConfig())

	_, err := engine.Start()
	require.NoError(t, err)
	mock.Advance(25 * time.Minute)

	s, err := engine.Tick()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeBreak, s.Mode, "transition completed despite panicking effects")
	assert.Len(t, engine.Sessions(), 1)
}

func TestTodayStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoStartNext = false
	engine, mock := newTestTimer(t, cfg)

	runInterval(t, engine, mock) // focus 25m
	runInterval(t, engine, mock) // break 5m

	stats := engine.Today()
	assert.Equal(t, 25, stats.FocusMinutes)
	assert.Equal(t, 5, stats.BreakMinutes)
	assert.Equal(t, 2, stats.Sessions)
}

func TestCyclesUntilLongBreak(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongBreakEvery = 4
	engine, _ := newTestTimer(t, cfg)

	assert.Equal(t, 3, engine.CyclesUntilLongBreak(State{Mode: domain.ModeFocus, Streak: 0}))
	assert.Equal(t, 0, engine.CyclesUntilLongBreak(State{Mode: domain.ModeFocus, Streak: 3}))
	assert.Equal(t, 2, engine.CyclesUntilLongBreak(State{Mode: domain.ModeBreak, Streak: 2}))
	assert.Equal(t, 0, engine.CyclesUntilLongBreak(State{Mode: domain.ModeBreak, IsLongBreak: true, Streak: 4}))
}

func TestCorruptStateFallsBackToDefault(t *testing.T) {
	store := kvstore.NewMemStore()
	store.SetRaw(StateKey, []byte("###"))
	mock := clock.NewMock(time.Now())
	engine := NewEngine(store, mock, zerolog.Nop(), nil, DefaultConfig())

	s := engine.State()
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, 25*60, s.RemainingSeconds)
}
