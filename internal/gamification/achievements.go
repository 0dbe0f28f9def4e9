package gamification

import (
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/stats"
)

// Achievement is a derived badge with its unlock state and progress
// toward the target. The set is fixed; nothing is persisted.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Target      int    `json:"target"`
}

// Achievements recomputes the badge set from the task and session
// history. Progress is capped at the target so rendering stays simple.
func (e *Engine) Achievements(tasks []domain.Task, sessions []domain.Session) []Achievement {
	done := 0
	for _, t := range tasks {
		if t.IsDone() {
			done++
		}
	}
	streak := e.Streak(tasks)
	now := e.clock.Now()
	today := now.Format(domain.DateLayout)

	todaySeconds := 0
	for _, s := range sessions {
		if s.Mode == domain.ModeFocus && s.Date == today {
			todaySeconds += s.Seconds
		}
	}

	return []Achievement{
		badge("first-steps", "First Steps", "Complete 10 tasks", done, 10),
		badge("productive", "Productive", "Complete 25 tasks", done, 25),
		badge("task-machine", "Task Machine", "Complete 50 tasks", done, 50),
		badge("on-a-roll", "On a Roll", "Complete a task 5 days in a row", streak, 5),
		badge("deep-day", "Deep Day", "Log 100 focus minutes in one day", stats.RoundMinutes(todaySeconds), 100),
	}
}

func badge(id, name, description string, progress, target int) Achievement {
	unlocked := progress >= target
	if progress > target {
		progress = target
	}
	return Achievement{
		ID:          id,
		Name:        name,
		Description: description,
		Unlocked:    unlocked,
		Progress:    progress,
		Target:      target,
	}
}
