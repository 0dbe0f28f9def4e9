package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/task"
)

// execute runs the task command tree against the test app, writing to
// out.
func execute(t *testing.T, app *App, out *bytes.Buffer, args ...string) {
	t.Helper()
	root := newTaskCmd(func() *App { return app })
	root.SetOut(out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
}

func taskInput(title string) task.CreateInput {
	return task.CreateInput{Title: title}
}

func TestTaskAddAndList(t *testing.T) {
	app, _, out := newTestApp(t)

	execute(t, app, out, "add", "Ship", "the", "release", "--priority", "high", "--due", "2026-09-05")
	assert.Contains(t, out.String(), "added")
	assert.Contains(t, out.String(), "Ship the release")

	out.Reset()
	execute(t, app, out, "list")
	assert.Contains(t, out.String(), "Ship the release")
	assert.Contains(t, out.String(), "due 2026-09-05")
	assert.Contains(t, out.String(), "high")
}

func TestTaskDoneHidesFromDefaultList(t *testing.T) {
	app, _, out := newTestApp(t)

	created, err := app.Tasks.Create(taskInput("Water plants"))
	require.NoError(t, err)

	execute(t, app, out, "done", created.ID)
	assert.Contains(t, out.String(), "done")

	got, ok := app.Tasks.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, "2026-09-01", got.CompletedAt)

	out.Reset()
	execute(t, app, out, "list")
	assert.NotContains(t, out.String(), "Water plants")

	out.Reset()
	execute(t, app, out, "list", "--all")
	assert.Contains(t, out.String(), "Water plants")
}

func TestTaskDoneUnknownID(t *testing.T) {
	app, _, out := newTestApp(t)

	execute(t, app, out, "done", "missing")
	assert.Contains(t, out.String(), "no such task")
}

func TestTaskToggleRoundTrip(t *testing.T) {
	app, _, out := newTestApp(t)

	created, err := app.Tasks.Create(taskInput("Flip me"))
	require.NoError(t, err)

	execute(t, app, out, "toggle", created.ID)
	got, _ := app.Tasks.Get(created.ID)
	assert.Equal(t, domain.StatusDone, got.Status)

	out.Reset()
	execute(t, app, out, "toggle", created.ID)
	got, _ = app.Tasks.Get(created.ID)
	assert.Equal(t, domain.StatusTodo, got.Status)
	assert.Empty(t, got.CompletedAt)
}

func TestTaskEditChangesOnlyFlaggedFields(t *testing.T) {
	app, _, out := newTestApp(t)

	created, err := app.Tasks.Create(taskInput("Original"))
	require.NoError(t, err)

	execute(t, app, out, "edit", created.ID, "--title", "Renamed")
	got, _ := app.Tasks.Get(created.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, created.Status, got.Status)
}

func TestTaskRm(t *testing.T) {
	app, _, out := newTestApp(t)

	created, err := app.Tasks.Create(taskInput("Ephemeral"))
	require.NoError(t, err)

	execute(t, app, out, "rm", created.ID)
	assert.Contains(t, out.String(), "removed")

	_, ok := app.Tasks.Get(created.ID)
	assert.False(t, ok)
}
