package model

import (
	"strings"
	"time"
)

// Note is a single sticky note
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Color     string     `json:"color"`
	DueAt     *time.Time `json:"dueAt"`
	CreatedAt time.Time  `json:"createdAt"`
	Notified  bool       `json:"notified"`
}

// FormData is what a user submits when creating or editing a note
type FormData struct {
	Title string     `json:"title" validate:"required_without=Body"`
	Body  string     `json:"body" validate:"required_without=Title"`
	Color string     `json:"color" validate:"omitempty,hexcolor"`
	DueAt *time.Time `json:"dueAt"`
}

// Normalize trims title and body and resolves palette names to hex
func (f FormData) Normalize() FormData {
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)
	f.Color = ResolveColor(f.Color)
	return f
}

// HasReminder reports whether the note carries a due date
func (n *Note) HasReminder() bool {
	return n.DueAt != nil
}

// IsOverdue returns true if the due date is at or before now
func (n *Note) IsOverdue(now time.Time) bool {
	if n.DueAt == nil {
		return false
	}
	return !n.DueAt.After(now)
}

// IsUpcoming returns true if the due date is strictly after now
func (n *Note) IsUpcoming(now time.Time) bool {
	if n.DueAt == nil {
		return false
	}
	return n.DueAt.After(now)
}

// Matches does a case-insensitive substring match on title or body
func (n *Note) Matches(search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Body), q)
}

// Clone returns a copy that shares no pointers with n
func (n Note) Clone() Note {
	if n.DueAt != nil {
		due := *n.DueAt
		n.DueAt = &due
	}
	return n
}

// DisplayTitle returns the title or a placeholder for untitled notes
func (n *Note) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return "Untitled"
}
