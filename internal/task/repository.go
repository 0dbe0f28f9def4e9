// Package task implements the task lifecycle engine: creation, patch
// updates, removal, and the timestamp invariants tied to status
// transitions. The repository is the only writer of the task collection;
// everything else reads snapshots.
package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/kvstore"
)

// StoreKey is the store key the task collection persists under.
const StoreKey = "app.tasks"

// Notifier observes committed task transitions. The automation engine
// satisfies this; the repository never imports it directly.
type Notifier interface {
	Run(prev, next domain.Task)
}

// CreateInput carries the caller-supplied fields for a new task. Zero
// values fall back to defaults: status todo, category other, priority
// unset (read as medium).
type CreateInput struct {
	Title            string
	WorkspaceID      string
	PageID           string
	Status           domain.Status
	Category         domain.Category
	Priority         domain.Priority
	DueDate          string
	DueTime          string
	Notes            string
	Tags             []string
	OrderIndex       *int
	EstimatedMinutes int
}

// Changes is a partial update: nil fields are left untouched, non-nil
// fields overwrite. ID, CreatedAt, WorkspaceID and PageID are not
// patchable and have no field here.
//
// CompletedAt is special: when non-nil it wins over the status-derived
// value, letting import paths restore historical completion dates.
type Changes struct {
	Title            *string
	Status           *domain.Status
	Category         *domain.Category
	Priority         *domain.Priority
	DueDate          *string
	DueTime          *string
	Notes            *string
	Tags             *[]string
	OrderIndex       *int
	EstimatedMinutes *int
	CompletedAt      *string
}

// Repository owns the task collection persisted under StoreKey. All
// mutations are serialized behind a mutex; reads return copies.
type Repository struct {
	store    kvstore.Store
	clock    clock.Clock
	logger   zerolog.Logger
	notifier Notifier

	mu sync.Mutex
}

// NewRepository creates a Repository over the given store. A nil
// notifier disables automation delivery.
func NewRepository(store kvstore.Store, clk clock.Clock, logger zerolog.Logger, notifier Notifier) *Repository {
	return &Repository{
		store:    store,
		clock:    clk,
		logger:   logger.With().Str("component", "task").Logger(),
		notifier: notifier,
	}
}

// Create appends a new task built from in and persists the collection.
// Automation does not observe creation; rules react to updates only.
func (r *Repository) Create(in CreateInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	t := domain.Task{
		ID:               uuid.NewString(),
		WorkspaceID:      in.WorkspaceID,
		PageID:           in.PageID,
		Title:            in.Title,
		Status:           in.Status,
		Category:         in.Category,
		Priority:         in.Priority,
		DueDate:          in.DueDate,
		DueTime:          in.DueTime,
		Notes:            in.Notes,
		Tags:             in.Tags,
		OrderIndex:       in.OrderIndex,
		EstimatedMinutes: in.EstimatedMinutes,
		CreatedAt:        now.Format(domain.DateLayout),
		UpdatedAt:        now.Format(time.RFC3339),
	}
	if !t.Status.IsValid() {
		t.Status = domain.StatusTodo
	}
	if !t.Category.IsValid() {
		t.Category = domain.CategoryOther
	}
	if t.Status == domain.StatusDone {
		t.CompletedAt = now.Format(domain.DateLayout)
	}

	tasks := r.load()
	tasks = append(tasks, t)
	if err := r.save(tasks); err != nil {
		return domain.Task{}, err
	}
	r.logger.Debug().Str("task_id", t.ID).Str("title", t.Title).Msg("task created")
	return t, nil
}

// Update merges ch into the task with the given id and persists the
// collection. An unknown id is a silent no-op returning ok=false; this
// keeps updates idempotent under racing deletes. The returned error is
// non-nil only when persisting fails.
//
// CompletedAt follows the stored-vs-resulting status: a transition into
// done stamps today, a transition out of done clears it, and a
// same-state update preserves the existing value. A task that is done
// with no completion date on record gets today backfilled.
func (r *Repository) Update(id string, ch Changes) (domain.Task, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.load()
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.logger.Debug().Str("task_id", id).Msg("update for unknown task ignored")
		return domain.Task{}, false, nil
	}

	now := r.clock.Now()
	prev := tasks[idx]
	next := applyChanges(prev, ch)

	switch {
	case ch.CompletedAt != nil:
		next.CompletedAt = *ch.CompletedAt
	case prev.Status != domain.StatusDone && next.Status == domain.StatusDone:
		next.CompletedAt = now.Format(domain.DateLayout)
	case prev.Status == domain.StatusDone && next.Status != domain.StatusDone:
		next.CompletedAt = ""
	case next.Status == domain.StatusDone && next.CompletedAt == "":
		// Legacy repair: done tasks written by older clients may lack a
		// completion date.
		next.CompletedAt = now.Format(domain.DateLayout)
	}
	next.UpdatedAt = now.Format(time.RFC3339)
	if prev.CreatedAt == "" && next.CreatedAt == "" {
		next.CreatedAt = now.Format(domain.DateLayout)
	}

	tasks[idx] = next
	if err := r.save(tasks); err != nil {
		return domain.Task{}, false, err
	}
	if r.notifier != nil {
		r.notifier.Run(prev, next)
	}
	return next, true, nil
}

// Remove deletes the task with the given id. Unknown ids report false
// without an error. Removal does not run automations.
func (r *Repository) Remove(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.load()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := r.save(tasks); err != nil {
				return false, err
			}
			r.logger.Debug().Str("task_id", id).Msg("task removed")
			return true, nil
		}
	}
	return false, nil
}

// ToggleStatus flips a task between done and todo, going through the
// same completion-date derivation as any other status update.
func (r *Repository) ToggleStatus(id string) (domain.Task, bool, error) {
	cur, ok := r.Get(id)
	if !ok {
		return domain.Task{}, false, nil
	}
	status := domain.StatusDone
	if cur.Status == domain.StatusDone {
		status = domain.StatusTodo
	}
	return r.Update(id, Changes{Status: &status})
}

// MarkDone transitions a task into done via Update.
func (r *Repository) MarkDone(id string) (domain.Task, bool, error) {
	status := domain.StatusDone
	return r.Update(id, Changes{Status: &status})
}

// Replace swaps in a wholesale new collection, typically from a cloud
// pull. Records missing an id or creation date are backfilled rather
// than rejected. Replace does not run automations.
func (r *Repository) Replace(tasks []domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := r.clock.Now().Format(domain.DateLayout)
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.CreatedAt == "" {
			t.CreatedAt = today
		}
		out[i] = t
	}
	if err := r.save(out); err != nil {
		return err
	}
	r.logger.Info().Int("count", len(out)).Msg("task collection replaced")
	return nil
}

// List returns a sorted snapshot of the collection. Mutating the result
// does not affect stored state.
func (r *Repository) List() []domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.load()
	domain.SortTasks(tasks)
	return tasks
}

// Get returns a copy of the task with the given id.
func (r *Repository) Get(id string) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.load() {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// load reads the stored collection, falling back to empty on a missing
// or corrupt value.
func (r *Repository) load() []domain.Task {
	var tasks []domain.Task
	r.store.Get(StoreKey, &tasks)
	return tasks
}

func (r *Repository) save(tasks []domain.Task) error {
	if err := r.store.Set(StoreKey, tasks); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist tasks")
		return errors.Wrap(err, "failed to persist tasks")
	}
	return nil
}

// applyChanges merges the non-nil fields of ch onto t. CompletedAt and
// UpdatedAt are handled by the caller.
func applyChanges(t domain.Task, ch Changes) domain.Task {
	if ch.Title != nil {
		t.Title = *ch.Title
	}
	if ch.Status != nil && ch.Status.IsValid() {
		t.Status = *ch.Status
	}
	if ch.Category != nil && ch.Category.IsValid() {
		t.Category = *ch.Category
	}
	if ch.Priority != nil {
		t.Priority = *ch.Priority
	}
	if ch.DueDate != nil {
		t.DueDate = *ch.DueDate
	}
	if ch.DueTime != nil {
		t.DueTime = *ch.DueTime
	}
	if ch.Notes != nil {
		t.Notes = *ch.Notes
	}
	if ch.Tags != nil {
		t.Tags = *ch.Tags
	}
	if ch.OrderIndex != nil {
		v := *ch.OrderIndex
		t.OrderIndex = &v
	}
	if ch.EstimatedMinutes != nil {
		t.EstimatedMinutes = *ch.EstimatedMinutes
	}
	return t
}
