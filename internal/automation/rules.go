package automation

import (
	"fmt"

	"github.com/focusfoundry/tempo/internal/domain"
)

// RegisterBuiltins installs the default rule set. Safe to call more than
// once thanks to idempotent registration.
func RegisterBuiltins(e *Engine) {
	e.Register(Rule{
		ID:          "celebrate-high-priority-done",
		Name:        "Celebrate completion of high-priority tasks",
		Description: "Fires when a task moves to done and priority is high.",
		When: func(prev, next domain.Task) bool {
			return prev.Status != domain.StatusDone &&
				next.Status == domain.StatusDone &&
				domain.EffectivePriority(next) == domain.PriorityHigh
		},
		Action: func(_, next domain.Task, ctx Context) error {
			ctx.Emit(Event{Kind: KindSuccess, Message: fmt.Sprintf("High priority completed: %s", next.Title)})
			return nil
		},
	})

	e.Register(Rule{
		ID:          "remind-upcoming",
		Name:        "Remind on date change",
		Description: "Fires when due date is added or changed.",
		When: func(prev, next domain.Task) bool {
			return prev.DueDate != next.DueDate
		},
		Action: func(_, next domain.Task, ctx Context) error {
			if next.DueDate != "" {
				ctx.Emit(Event{Kind: KindInfo, Message: fmt.Sprintf("Due %s: %s", next.DueDate, next.Title)})
			}
			return nil
		},
	})
}
