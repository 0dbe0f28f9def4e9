// Package automation provides a small rule engine that observes task
// transitions and fires side-effecting actions when declared predicates
// match. Rules never influence the mutation that triggered them: every
// rule failure is caught and swallowed per-rule so one broken rule can
// neither block other rules nor surface to the caller.
package automation

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/domain"
)

// Event is the payload emitted toward the UI layer. The engine does not
// render anything; a Sink subscribes and decides how to present it.
type Event struct {
	// Kind is one of "toast", "info", "success", "error".
	Kind string `json:"kind"`

	// Message is the human-readable text.
	Message string `json:"message"`
}

// Event kinds.
const (
	KindToast   = "toast"
	KindInfo    = "info"
	KindSuccess = "success"
	KindError   = "error"
)

// Sink receives events emitted by rule actions. Implementations must not
// block; delivery is fire-and-forget.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Event)

// Emit calls the wrapped function.
func (f SinkFunc) Emit(e Event) { f(e) }

// LogSink writes events to a zerolog logger. It is the fallback for
// contexts with no UI to toast into.
type LogSink struct {
	Logger zerolog.Logger
}

// Emit logs the event at info level.
func (s LogSink) Emit(e Event) {
	s.Logger.Info().Str("kind", e.Kind).Msg(e.Message)
}

// Context is the single capability exposed to rule actions: emitting a
// named event toward the UI layer.
type Context struct {
	sink Sink
}

// Emit forwards an event to the configured sink, if any.
func (c Context) Emit(e Event) {
	if c.sink != nil {
		c.sink.Emit(e)
	}
}

// Rule pairs a predicate over a task transition with a side-effecting
// action. Rules are identified by ID; duplicate registration is a
// silent no-op.
type Rule struct {
	ID          string
	Name        string
	Description string

	// When decides whether the action fires for a (prev, next) transition.
	When func(prev, next domain.Task) bool

	// Action performs the side effect. A returned error (or panic) is
	// logged and swallowed.
	Action func(prev, next domain.Task, ctx Context) error
}

// Engine holds the rule registry and runs matching rules against task
// transitions in registration order.
type Engine struct {
	mu     sync.RWMutex
	rules  []Rule
	sink   Sink
	logger zerolog.Logger
}

// NewEngine creates an Engine delivering events to sink. A nil sink
// drops events.
func NewEngine(sink Sink, logger zerolog.Logger) *Engine {
	return &Engine{
		sink:   sink,
		logger: logger.With().Str("component", "automation").Logger(),
	}
}

// Register inserts a rule into the registry unless a rule with the same
// id is already present. Duplicate registration is a silent no-op, not
// an error, so callers may re-register built-ins safely.
func (e *Engine) Register(rule Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.rules {
		if r.ID == rule.ID {
			return
		}
	}
	e.rules = append(e.rules, rule)
}

// Rules returns a snapshot copy of the registry. Mutating the returned
// slice does not affect the engine.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Run evaluates every registered rule against the (prev, next)
// transition and invokes matching actions. Rules run in registration
// order; each rule's failure is contained to that rule.
func (e *Engine) Run(prev, next domain.Task) {
	ctx := Context{sink: e.sink}
	for _, rule := range e.Rules() {
		e.runOne(rule, prev, next, ctx)
	}
}

func (e *Engine) runOne(rule Rule, prev, next domain.Task, ctx Context) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Str("rule", rule.ID).Any("panic", r).Msg("automation rule panicked")
		}
	}()

	if rule.When == nil || rule.Action == nil {
		return
	}
	if !rule.When(prev, next) {
		return
	}
	if err := rule.Action(prev, next, ctx); err != nil {
		e.logger.Warn().Err(err).Str("rule", rule.ID).Msg("automation rule failed")
	}
}
