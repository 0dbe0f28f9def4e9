package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/focusfoundry/tempo/internal/automation"
	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/cloud"
	"github.com/focusfoundry/tempo/internal/config"
	"github.com/focusfoundry/tempo/internal/gamification"
	"github.com/focusfoundry/tempo/internal/kvstore"
	"github.com/focusfoundry/tempo/internal/notes"
	"github.com/focusfoundry/tempo/internal/pomodoro"
	"github.com/focusfoundry/tempo/internal/task"
)

// newTestApp builds an App on an in-memory store with a fixed clock.
// Output written by commands and automation toasts lands in the
// returned buffer.
func newTestApp(t *testing.T) (*App, *clock.Mock, *bytes.Buffer) {
	t.Helper()

	out := new(bytes.Buffer)
	mock := clock.NewMock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	store := kvstore.NewMemStore()
	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	sink := newToastSink(out)

	rules := automation.NewEngine(sink, logger)
	automation.RegisterBuiltins(rules)

	app := &App{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
		Clock:  mock,
		Out:    out,
		Notes:  notes.NewRepository(store, mock, logger),
		Pomo:   pomodoro.NewEngine(store, mock, logger, pomodoro.NoopEffects{}, cfg.Pomodoro),
		Game: gamification.NewEngine(store, mock, logger, sink, gamification.Goals{
			Weekly:  cfg.Goals.Weekly,
			Monthly: cfg.Goals.Monthly,
		}),
		Rules: rules,
		Cloud: cloud.NewHTTPAdapter("", nil, store, mock, logger),
	}
	app.Tasks = task.NewRepository(store, mock, logger, rules)
	return app, mock, out
}

func TestToastSinkStylesByKind(t *testing.T) {
	out := new(bytes.Buffer)
	sink := newToastSink(out)

	sink.Emit(automation.Event{Kind: automation.KindSuccess, Message: "all done"})
	sink.Emit(automation.Event{Kind: automation.KindInfo, Message: "heads up"})

	assert.Contains(t, out.String(), "• all done")
	assert.Contains(t, out.String(), "• heads up")
}

func TestTerminalEffectsSoundIsBell(t *testing.T) {
	out := new(bytes.Buffer)
	fx := newTerminalEffects(out)

	fx.Sound()
	assert.Equal(t, "\a", out.String())

	out.Reset()
	fx.Notify("Focus session complete", "Time for a break.")
	assert.Contains(t, out.String(), "Focus session complete")
	assert.Contains(t, out.String(), "Time for a break.")
}
