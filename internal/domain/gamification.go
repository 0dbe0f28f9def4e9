package domain

// TrophyTier ranks a week's completed-task count against fixed thresholds.
type TrophyTier string

// Trophy tiers from lowest to highest.
const (
	TrophyStarter TrophyTier = "starter"
	TrophyBronze  TrophyTier = "bronze"
	TrophySilver  TrophyTier = "silver"
	TrophyGold    TrophyTier = "gold"
	TrophyDiamond TrophyTier = "diamond"
)

// TrophyForCount maps a weekly completed count to its trophy tier.
// Thresholds: >=30 diamond, >=20 gold, >=10 silver, >=5 bronze.
func TrophyForCount(count int) TrophyTier {
	switch {
	case count >= 30:
		return TrophyDiamond
	case count >= 20:
		return TrophyGold
	case count >= 10:
		return TrophySilver
	case count >= 5:
		return TrophyBronze
	default:
		return TrophyStarter
	}
}

// WeekResult records one fully-evaluated week in the gamification history.
type WeekResult struct {
	// Week is the Monday-start week key, e.g. "2026-W36".
	Week string `json:"week"`

	// Completed is the number of tasks completed during that week.
	Completed int `json:"completed"`

	// LevelAfter is the level in effect after the evaluation.
	LevelAfter int `json:"level_after"`

	// Trophy is the tier earned for the week.
	Trophy TrophyTier `json:"trophy"`
}

// HistoryLimit caps the gamification history to bound storage growth.
// Oldest entries are dropped first.
const HistoryLimit = 26

// GamificationState is the singleton persisted record of weekly level
// progression. It is mutated only by the weekly evaluation step, so past
// level-ups stay pinned even if old tasks are edited later.
type GamificationState struct {
	// CurrentLevel starts at 1 and is monotonically non-decreasing.
	CurrentLevel int `json:"current_level"`

	// LastEvaluatedWeek is the week key of the most recent fully-evaluated
	// week. It acts as a de-duplication guard: each week is evaluated at
	// most once.
	LastEvaluatedWeek string `json:"last_evaluated_week,omitempty"`

	// BestWeeklyCompleted is the running maximum of weekly completions.
	BestWeeklyCompleted int `json:"best_weekly_completed"`

	// History is the bounded ordered log of past week evaluations,
	// newest last, capped to HistoryLimit entries.
	History []WeekResult `json:"history,omitempty"`
}

// NewGamificationState returns the default state for a fresh install or
// after a corrupt stored value.
func NewGamificationState() GamificationState {
	return GamificationState{CurrentLevel: 1}
}

// GoalClaims records the period keys for which the weekly and monthly
// goal celebrations have already fired, so each fires at most once per
// period rather than on every recomputation.
type GoalClaims struct {
	WeekClaimed  string `json:"week_claimed,omitempty"`
	MonthClaimed string `json:"month_claimed,omitempty"`
}
