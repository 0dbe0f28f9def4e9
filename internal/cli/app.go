package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/automation"
	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/cloud"
	"github.com/focusfoundry/tempo/internal/config"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/gamification"
	"github.com/focusfoundry/tempo/internal/kvstore"
	"github.com/focusfoundry/tempo/internal/notes"
	"github.com/focusfoundry/tempo/internal/notify"
	"github.com/focusfoundry/tempo/internal/pomodoro"
	"github.com/focusfoundry/tempo/internal/task"
)

// App wires the engines together for the command handlers. One App is
// built per invocation in the root command's PersistentPreRunE.
type App struct {
	Cfg    *config.Config
	Logger zerolog.Logger
	Store  kvstore.Store
	Clock  clock.Clock
	Out    io.Writer

	Tasks     *task.Repository
	Notes     *notes.Repository
	Pomo      *pomodoro.Engine
	Game      *gamification.Engine
	Rules     *automation.Engine
	Cloud     *cloud.HTTPAdapter
	Notifiers []notify.Notifier
}

// newApp builds the full dependency graph from configuration.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, out io.Writer) (*App, error) {
	dataDir, err := config.DataDir(cfg)
	if err != nil {
		return nil, err
	}
	store, err := kvstore.NewFileStore(dataDir, logger)
	if err != nil {
		return nil, err
	}

	clk := clock.System{}
	sink := newToastSink(out)

	rules := automation.NewEngine(sink, logger)
	automation.RegisterBuiltins(rules)

	app := &App{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
		Clock:  clk,
		Out:    out,
		Notes:  notes.NewRepository(store, clk, logger),
		Pomo:   pomodoro.NewEngine(store, clk, logger, newTerminalEffects(out), cfg.Pomodoro),
		Game: gamification.NewEngine(store, clk, logger, sink, gamification.Goals{
			Weekly:  cfg.Goals.Weekly,
			Monthly: cfg.Goals.Monthly,
		}),
		Rules: rules,
		Cloud: cloud.NewHTTPAdapter(cfg.Cloud.BaseURL, nil, store, clk, logger),
	}
	app.Tasks = task.NewRepository(store, clk, logger, rules)

	if cfg.Notify.DiscordWebhookURL != "" {
		app.Notifiers = append(app.Notifiers, notify.Discord{WebhookURL: cfg.Notify.DiscordWebhookURL})
	}
	if cfg.Notify.TelegramBotToken != "" && cfg.Notify.TelegramChatID != "" {
		app.Notifiers = append(app.Notifiers, notify.Telegram{
			BotToken: cfg.Notify.TelegramBotToken,
			ChatID:   cfg.Notify.TelegramChatID,
		})
	}
	app.registerWebhookRule(ctx)
	return app, nil
}

// registerWebhookRule announces completed tasks to the configured
// webhook channels. Delivery is fire-and-forget: results are logged,
// never surfaced, and never block the task mutation.
func (a *App) registerWebhookRule(ctx context.Context) {
	if len(a.Notifiers) == 0 {
		return
	}
	notifiers := a.Notifiers
	logger := a.Logger
	a.Rules.Register(automation.Rule{
		ID:          "announce-done",
		Name:        "Announce completions",
		Description: "Posts completed tasks to the configured webhook channels",
		When: func(prev, next domain.Task) bool {
			return prev.Status != domain.StatusDone && next.Status == domain.StatusDone
		},
		Action: func(_, next domain.Task, _ automation.Context) error {
			message := fmt.Sprintf("Completed: %s", next.Title)
			for _, n := range notifiers {
				go func(n notify.Notifier) {
					sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
					defer cancel()
					if res := n.Send(sendCtx, message); !res.OK {
						logger.Debug().Str("error", res.Err).Msg("webhook delivery failed")
					}
				}(n)
			}
			return nil
		},
	})
}

// RefreshDerived runs the evaluation steps that the app performs on
// every data change: the weekly level evaluation and goal claiming.
func (a *App) RefreshDerived() {
	tasks := a.Tasks.List()
	if _, _, err := a.Game.EvaluateWeek(tasks); err != nil {
		a.Logger.Warn().Err(err).Msg("weekly evaluation failed")
	}
	if _, err := a.Game.ClaimGoals(tasks); err != nil {
		a.Logger.Warn().Err(err).Msg("goal claiming failed")
	}
}

// newToastSink renders automation events as styled lines on out.
func newToastSink(out io.Writer) automation.Sink {
	return automation.SinkFunc(func(e automation.Event) {
		style := styleMuted
		switch e.Kind {
		case automation.KindSuccess:
			style = styleSuccess
		case automation.KindError:
			style = styleError
		case automation.KindInfo:
			style = styleTitle
		}
		fmt.Fprintln(out, style.Render("• "+e.Message))
	})
}

// terminalEffects implements pomodoro.Effects for a terminal: the sound
// is the BEL character, vibration has no terminal equivalent, and
// desktop notifications degrade to a styled line.
type terminalEffects struct {
	out io.Writer
}

func newTerminalEffects(out io.Writer) terminalEffects {
	return terminalEffects{out: out}
}

// Sound writes the BEL character, which most terminals surface as an
// audible or visual bell.
func (t terminalEffects) Sound() {
	fmt.Fprint(t.out, "\a")
}

func (t terminalEffects) Vibrate() {}

func (t terminalEffects) Notify(title, body string) {
	fmt.Fprintln(t.out, styleBold.Render(title)+" "+styleMuted.Render(body))
}
