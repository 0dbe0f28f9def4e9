// Package notes stores dated markdown notes alongside the task
// collection. Notes have no lifecycle beyond create and remove.
package notes

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/kvstore"
)

// StoreKey is the store key the note collection persists under.
const StoreKey = "app.notes"

// Repository owns the note collection.
type Repository struct {
	store  kvstore.Store
	clock  clock.Clock
	logger zerolog.Logger

	mu sync.Mutex
}

// NewRepository creates a Repository over the given store.
func NewRepository(store kvstore.Store, clk clock.Clock, logger zerolog.Logger) *Repository {
	return &Repository{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "notes").Logger(),
	}
}

// Create appends a new note with the current timestamp.
func (r *Repository) Create(workspaceID, pageID, content string) (domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := domain.Note{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		PageID:      pageID,
		Date:        r.clock.Now().Format(time.RFC3339),
		Content:     content,
	}
	notes := append(r.load(), n)
	if err := r.save(notes); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// Remove deletes the note with the given id; unknown ids report false.
func (r *Repository) Remove(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.load()
	for i := range notes {
		if notes[i].ID == id {
			notes = append(notes[:i], notes[i+1:]...)
			return true, r.save(notes)
		}
	}
	return false, nil
}

// Get returns a copy of the note with the given id.
func (r *Repository) Get(id string) (domain.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.load() {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Note{}, false
}

// List returns a snapshot of the collection, newest first. Notes with
// unparseable dates sort last in their stored order.
func (r *Repository) List() []domain.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.load()
	sort.SliceStable(notes, func(i, j int) bool {
		ti, oki := parseNoteDate(notes[i].Date)
		tj, okj := parseNoteDate(notes[j].Date)
		switch {
		case oki && okj:
			return ti.After(tj)
		case oki:
			return true
		default:
			return false
		}
	})
	return notes
}

func parseNoteDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, domain.DateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r *Repository) load() []domain.Note {
	var notes []domain.Note
	r.store.Get(StoreKey, &notes)
	return notes
}

func (r *Repository) save(notes []domain.Note) error {
	if err := r.store.Set(StoreKey, notes); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist notes")
		return errors.Wrap(err, "failed to persist notes")
	}
	return nil
}
