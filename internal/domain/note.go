package domain

// Note is a lightweight dated note attached to a page. Content is
// markdown; rendering is a presentation concern.
type Note struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	PageID      string `json:"page_id,omitempty"`

	// Date is an RFC 3339 instant or civil date, as written by the client
	// that created the note.
	Date string `json:"date"`

	Content string `json:"content"`
}

// Workspace is a named container for pages and tasks.
type Workspace struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Page is a named view within a workspace. Every task belongs to exactly
// one page within exactly one workspace.
type Page struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	OrderIndex  int    `json:"order_index,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
