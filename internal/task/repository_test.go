package task

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/kvstore"
	"github.com/focusfoundry/tempo/internal/testutil"
)

// recordingNotifier captures every (prev, next) pair passed to Run.
type recordingNotifier struct {
	calls [][2]domain.Task
}

func (n *recordingNotifier) Run(prev, next domain.Task) {
	n.calls = append(n.calls, [2]domain.Task{prev, next})
}

func newTestRepo(t *testing.T) (*Repository, *clock.Mock, *recordingNotifier) {
	t.Helper()
	mock := clock.NewMock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	repo := NewRepository(kvstore.NewMemStore(), mock, zerolog.Nop(), notifier)
	return repo, mock, notifier
}

func TestCreateDefaults(t *testing.T) {
	repo, _, notifier := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusTodo, created.Status)
	assert.Equal(t, domain.CategoryOther, created.Category)
	assert.Equal(t, "2026-09-01", created.CreatedAt)
	assert.Empty(t, created.CompletedAt)
	assert.NotEmpty(t, created.UpdatedAt)
	assert.Empty(t, notifier.calls, "creation must not run automations")

	got, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestCreateDoneStampsCompletion(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Imported", Status: domain.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", created.CompletedAt)
}

func TestUpdateCompletionLifecycle(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	// Day 1: created as todo.
	created, err := repo.Create(CreateInput{Title: "Write spec"})
	require.NoError(t, err)

	// Day 2: marked done.
	mock.Advance(24 * time.Hour)
	status := domain.StatusDone
	updated, ok, err := repo.Update(created.ID, Changes{Status: &status})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-09-02", updated.CompletedAt)
	assert.Equal(t, "2026-09-01", updated.CreatedAt)

	// Day 3: reopened; completion date clears, creation date survives.
	mock.Advance(24 * time.Hour)
	status = domain.StatusInProgress
	updated, ok, err = repo.Update(created.ID, Changes{Status: &status})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, updated.CompletedAt)
	assert.Equal(t, "2026-09-01", updated.CreatedAt)
}

func TestUpdateDoneToDonePreservesCompletion(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec"})
	require.NoError(t, err)

	status := domain.StatusDone
	_, _, err = repo.Update(created.ID, Changes{Status: &status})
	require.NoError(t, err)

	// Editing the title a week later must not refresh the completion date.
	mock.Advance(7 * 24 * time.Hour)
	title := "Write full spec"
	updated, ok, err := repo.Update(created.ID, Changes{Title: &title})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-09-01", updated.CompletedAt)
	assert.Equal(t, "Write full spec", updated.Title)
}

func TestUpdateBackfillsMissingCompletion(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	// A done task written by an older client without a completion date.
	require.NoError(t, repo.Replace([]domain.Task{{
		ID:        "legacy",
		Title:     "Old record",
		Status:    domain.StatusDone,
		CreatedAt: "2025-01-01",
	}}))

	title := "Old record touched"
	updated, ok, err := repo.Update("legacy", Changes{Title: &title})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-09-01", updated.CompletedAt)
}

func TestUpdateExplicitCompletedAtWins(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Restored"})
	require.NoError(t, err)

	status := domain.StatusDone
	when := "2026-05-20"
	updated, ok, err := repo.Update(created.ID, Changes{Status: &status, CompletedAt: &when})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-05-20", updated.CompletedAt)
}

func TestUpdateUnknownIDIsSilentNoOp(t *testing.T) {
	repo, _, notifier := newTestRepo(t)

	title := "ghost"
	_, ok, err := repo.Update("missing", Changes{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, notifier.calls)
}

func TestUpdateNotifiesExactlyOnce(t *testing.T) {
	repo, _, notifier := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec", Priority: domain.PriorityHigh})
	require.NoError(t, err)

	status := domain.StatusDone
	_, _, err = repo.Update(created.ID, Changes{Status: &status})
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	prev, next := notifier.calls[0][0], notifier.calls[0][1]
	assert.Equal(t, domain.StatusTodo, prev.Status)
	assert.Equal(t, domain.StatusDone, next.Status)
	assert.Equal(t, "2026-09-01", next.CompletedAt, "notifier sees the post-derivation task")
}

func TestUpdateIgnoresInvalidStatus(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec"})
	require.NoError(t, err)

	bad := domain.Status("archived")
	updated, ok, err := repo.Update(created.ID, Changes{Status: &bad})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusTodo, updated.Status)
}

func TestToggleStatus(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec"})
	require.NoError(t, err)

	toggled, ok, err := repo.ToggleStatus(created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, toggled.Status)
	assert.Equal(t, "2026-09-01", toggled.CompletedAt)

	toggled, ok, err = repo.ToggleStatus(created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusTodo, toggled.Status)
	assert.Empty(t, toggled.CompletedAt)

	_, ok, err = repo.ToggleStatus("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMarkDoneFromInProgress(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec", Status: domain.StatusInProgress})
	require.NoError(t, err)

	done, ok, err := repo.MarkDone(created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, done.Status)
	assert.Equal(t, "2026-09-01", done.CompletedAt)
}

func TestRemove(t *testing.T) {
	repo, _, notifier := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "Write spec"})
	require.NoError(t, err)

	ok, err := repo.Remove(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, repo.List())
	assert.Empty(t, notifier.calls, "removal must not run automations")

	ok, err = repo.Remove(created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceBackfillsIdentity(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	require.NoError(t, repo.Replace([]domain.Task{
		{Title: "pulled without id", Status: domain.StatusTodo},
		{ID: "keep-me", Title: "pulled intact", Status: domain.StatusDone, CreatedAt: "2025-12-01", CompletedAt: "2025-12-02"},
	}))

	tasks := repo.List()
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.NotEmpty(t, task.ID)
		assert.NotEmpty(t, task.CreatedAt)
	}

	kept, ok := repo.Get("keep-me")
	require.True(t, ok)
	assert.Equal(t, "2025-12-01", kept.CreatedAt)
	assert.Equal(t, "2025-12-02", kept.CompletedAt)
}

func TestListReturnsSortedSnapshot(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	one := 1
	_, err := repo.Create(CreateInput{Title: "zeta"})
	require.NoError(t, err)
	_, err = repo.Create(CreateInput{Title: "alpha"})
	require.NoError(t, err)
	_, err = repo.Create(CreateInput{Title: "pinned", OrderIndex: &one})
	require.NoError(t, err)

	tasks := repo.List()
	require.Len(t, tasks, 3)
	assert.Equal(t, "pinned", tasks[0].Title)
	assert.Equal(t, "alpha", tasks[1].Title)
	assert.Equal(t, "zeta", tasks[2].Title)

	// Mutating the snapshot must not leak back into the store.
	tasks[0].Title = "mutated"
	fresh := repo.List()
	assert.Equal(t, "pinned", fresh[0].Title)
}

func TestUpdatePersistFailureReturnsError(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	failing := testutil.NewFailingStore(kvstore.NewMemStore())
	failing.Allow = 1 // let the create through
	repo := NewRepository(failing, mock, zerolog.Nop(), notifier)

	created, err := repo.Create(CreateInput{Title: "Flaky disk"})
	require.NoError(t, err)
	notifier.calls = nil

	title := "renamed"
	_, _, err = repo.Update(created.ID, Changes{Title: &title})
	require.ErrorIs(t, err, testutil.ErrMockPersist)
	assert.Empty(t, notifier.calls, "failed persist must not run automations")

	got, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Flaky disk", got.Title)
}
