package gamification

import "github.com/focusfoundry/tempo/internal/domain"

// XP model constants. XP levels are a separate ladder from the weekly
// level in GamificationState; both are surfaced to the user.
const (
	xpBase        = 10
	xpHighBonus   = 10
	xpMediumBonus = 5
	xpPerLevel    = 200
)

// XPSummary is the derived experience standing recomputed from the full
// task history on every read.
type XPSummary struct {
	// Total is the accumulated XP across all completed tasks.
	Total int `json:"total"`

	// Level is floor(Total/200)+1, minimum 1.
	Level int `json:"level"`

	// Progress is the XP earned within the current level (Total mod 200).
	Progress int `json:"progress"`
}

// TaskXP returns the XP a single task contributes: 0 unless done, then
// base 10 plus 10 for high priority or 5 for medium. An unset priority
// counts as medium.
func TaskXP(t domain.Task) int {
	if !t.IsDone() {
		return 0
	}
	switch domain.EffectivePriority(t) {
	case domain.PriorityHigh:
		return xpBase + xpHighBonus
	case domain.PriorityLow:
		return xpBase
	default:
		return xpBase + xpMediumBonus
	}
}

// ComputeXP sums TaskXP over the collection and derives the XP level
// and in-level progress.
func ComputeXP(tasks []domain.Task) XPSummary {
	total := 0
	for _, t := range tasks {
		total += TaskXP(t)
	}
	return XPSummary{
		Total:    total,
		Level:    total/xpPerLevel + 1,
		Progress: total % xpPerLevel,
	}
}
