package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"todo is valid", StatusTodo, true},
		{"in-progress is valid", StatusInProgress, true},
		{"done is valid", StatusDone, true},
		{"empty is invalid", Status(""), false},
		{"unknown is invalid", Status("started"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestEffectivePriority(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		task Task
		want Priority
	}{
		{"explicit high", Task{Priority: PriorityHigh}, PriorityHigh},
		{"explicit medium", Task{Priority: PriorityMedium}, PriorityMedium},
		{"explicit low", Task{Priority: PriorityLow}, PriorityLow},
		{"absent defaults to medium", Task{}, PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EffectivePriority(tt.task))
		})
	}
}

func TestTrophyForCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		count int
		want  TrophyTier
	}{
		{0, TrophyStarter},
		{4, TrophyStarter},
		{5, TrophyBronze},
		{9, TrophyBronze},
		{10, TrophySilver},
		{19, TrophySilver},
		{20, TrophyGold},
		{29, TrophyGold},
		{30, TrophyDiamond},
		{100, TrophyDiamond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrophyForCount(tt.count), "count %d", tt.count)
	}
}

func TestSortTasks(t *testing.T) {
	t.Parallel()

	idx := func(i int) *int { return &i }

	tasks := []Task{
		{Title: "zeta"},
		{Title: "beta", OrderIndex: idx(2)},
		{Title: "alpha"},
		{Title: "gamma", OrderIndex: idx(1)},
	}
	SortTasks(tasks)

	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"gamma", "beta", "alpha", "zeta"}, titles)
}

func TestTask_HasTag(t *testing.T) {
	t.Parallel()
	task := Task{Tags: []string{"deep-work", "q3"}}
	assert.True(t, task.HasTag("q3"))
	assert.False(t, task.HasTag("q4"))
}
