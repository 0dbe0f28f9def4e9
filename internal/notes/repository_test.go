package notes

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/kvstore"
)

func newTestNotes(t *testing.T) (*Repository, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	return NewRepository(kvstore.NewMemStore(), mock, zerolog.Nop()), mock
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := newTestNotes(t)

	created, err := repo.Create("ws-1", "page-1", "# Standup\n\n- shipped the thing")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2026-09-01T10:00:00Z", created.Date)

	got, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestListNewestFirst(t *testing.T) {
	repo, mock := newTestNotes(t)

	first, err := repo.Create("", "", "older")
	require.NoError(t, err)
	mock.Advance(time.Hour)
	second, err := repo.Create("", "", "newer")
	require.NoError(t, err)

	notes := repo.List()
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestRemove(t *testing.T) {
	repo, _ := newTestNotes(t)

	created, err := repo.Create("", "", "ephemeral")
	require.NoError(t, err)

	ok, err := repo.Remove(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Remove(created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, repo.List())
}
