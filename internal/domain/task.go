// Package domain provides shared domain types for the tempo productivity
// engine. These types are used across all internal packages to ensure
// consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: standard library only
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case. Date-valued fields are stored as
// strings: civil dates use "2006-01-02" and instants use RFC 3339. String
// storage is deliberate; the persisted store may contain records written
// by older clients with missing or malformed dates, and aggregate
// computations exclude those rather than fail on load.
package domain

import (
	"sort"
	"strings"
)

// DateLayout is the civil-date layout used by CreatedAt, CompletedAt,
// DueDate and Session.Date.
const DateLayout = "2006-01-02"

// Status represents the lifecycle state of a task.
type Status string

// Task status constants. The wire values match the persisted store
// ("in-progress" keeps the hyphenated form for compatibility with
// existing data).
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// IsValid checks if the status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (s Status) String() string { return string(s) }

// Category classifies a task for filtering and reporting.
type Category string

// Category constants define the valid task categories.
const (
	CategoryDesign   Category = "design"
	CategoryDev      Category = "dev"
	CategoryMeet     Category = "meet"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

// IsValid checks if the category is a valid value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDesign, CategoryDev, CategoryMeet, CategoryPersonal, CategoryOther:
		return true
	default:
		return false
	}
}

// Priority represents the urgency of a task. An empty priority is treated
// as medium everywhere it is read; use EffectivePriority for that.
type Priority string

// Priority constants define the valid task priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is a valid value. The empty string is
// valid input (it means "unset"), but not a valid stored constant.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// EffectivePriority resolves a task's priority, defaulting to medium when
// unset. Every read path goes through this accessor so the default lives
// in exactly one place.
func EffectivePriority(t Task) Priority {
	if t.Priority == "" {
		return PriorityMedium
	}
	return t.Priority
}

// Task represents a single unit of work.
//
// Example JSON representation:
//
//	{
//	    "id": "b2f1c4d0-...",
//	    "workspace_id": "ws-personal",
//	    "page_id": "page-inbox",
//	    "title": "Write spec",
//	    "status": "todo",
//	    "category": "dev",
//	    "priority": "high",
//	    "due_date": "2026-09-04",
//	    "created_at": "2026-09-01",
//	    "updated_at": "2026-09-01T10:00:00Z"
//	}
type Task struct {
	// ID is the unique identifier for the task, generated at creation and
	// never changed afterwards.
	ID string `json:"id"`

	// WorkspaceID and PageID link the task to its containing page. A task
	// always belongs to exactly one page within exactly one workspace.
	WorkspaceID string `json:"workspace_id,omitempty"`
	PageID      string `json:"page_id,omitempty"`

	// Title is the display string for the task.
	Title string `json:"title"`

	// Status is the current lifecycle state (todo, in-progress, done).
	Status Status `json:"status"`

	// Category classifies the task for filtering and charts.
	Category Category `json:"category"`

	// Priority is optional; when empty, readers treat it as medium via
	// EffectivePriority.
	Priority Priority `json:"priority,omitempty"`

	// DueDate is an optional civil date ("2006-01-02").
	DueDate string `json:"due_date,omitempty"`

	// DueTime is an optional time of day ("15:04").
	DueTime string `json:"due_time,omitempty"`

	// Notes holds free-form text attached to the task.
	Notes string `json:"notes,omitempty"`

	// Tags is an ordered list of free-text labels (render/filter only).
	Tags []string `json:"tags,omitempty"`

	// OrderIndex is an optional manual sort index, smaller first. Tasks
	// without one sort after those with it.
	OrderIndex *int `json:"order_index,omitempty"`

	// EstimatedMinutes is an optional effort estimate.
	EstimatedMinutes int `json:"estimated_minutes,omitempty"`

	// CreatedAt is the civil date the task was created. It is set once at
	// creation and never overwritten by later updates.
	CreatedAt string `json:"created_at"`

	// UpdatedAt is an RFC 3339 instant refreshed on every update.
	UpdatedAt string `json:"updated_at,omitempty"`

	// CompletedAt is the civil date the task was marked done. It is set
	// exactly when status transitions into done from a non-done state,
	// cleared when status leaves done, and otherwise left unchanged.
	CompletedAt string `json:"completed_at,omitempty"`
}

// IsDone reports whether the task is in the done state.
func (t Task) IsDone() bool { return t.Status == StatusDone }

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

// SortTasks orders tasks for display: tasks with an OrderIndex come
// first (ascending), the rest follow alphabetically by title
// (case-insensitive). The sort is stable so equal elements keep their
// relative order.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		oi, oj := tasks[i].OrderIndex, tasks[j].OrderIndex
		switch {
		case oi != nil && oj != nil:
			if *oi != *oj {
				return *oi < *oj
			}
			return lessTitle(tasks[i].Title, tasks[j].Title)
		case oi != nil:
			return true
		case oj != nil:
			return false
		default:
			return lessTitle(tasks[i].Title, tasks[j].Title)
		}
	})
}

func lessTitle(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
