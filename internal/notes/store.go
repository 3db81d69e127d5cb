// Package notes holds the note collection. Every mutation is applied to the
// latest saved collection and written through to the repository before it
// returns, so several sticky processes can share one database.
package notes

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("note not found")
	ErrAmbiguousID = errors.New("id prefix matches more than one note")
)

// Repository is the persistence port of the store
type Repository interface {
	// LoadNotes returns the saved collection; read failures yield an empty one
	LoadNotes() []model.Note
	// ReadNotes returns the saved collection or the read error
	ReadNotes() ([]model.Note, error)
	// UpdateNotes reloads the collection, passes it to fn and saves fn's
	// result when fn reports a change, all in one step. It returns what fn
	// returned even when the save fails.
	UpdateNotes(fn func([]model.Note) ([]model.Note, bool)) ([]model.Note, error)
}

// IDGenerator allocates note ids
type IDGenerator func() string

// UUIDGenerator returns random v4 UUIDs
func UUIDGenerator() string {
	return uuid.NewString()
}

// Clock returns the current time
type Clock func() time.Time

// Store is the ordered note collection, newest first
type Store struct {
	mu    sync.Mutex
	notes []model.Note
	// dirty is set while the last change could not be saved; the in-memory
	// collection is then ahead of the repository and is not reloaded
	dirty    bool
	repo     Repository
	newID    IDGenerator
	now      Clock
	validate *formValidator
	log      *logger.Logger
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides id allocation
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock overrides the time source
func WithClock(clock Clock) Option {
	return func(s *Store) { s.now = clock }
}

// New creates a store seeded from repo
func New(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		newID:    UUIDGenerator,
		now:      time.Now,
		validate: newFormValidator(),
		log:      logger.WithFields(logger.F("component", "notes")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.notes = repo.LoadNotes()
	s.log.Info("Store opened", logger.F("notes", len(s.notes)))
	return s
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// NewID allocates an id from the store's generator
func (s *Store) NewID() string {
	return s.newID()
}

// refresh picks up writes made by other processes. Must be called with s.mu
// held.
func (s *Store) refresh() {
	if s.dirty {
		return
	}
	notes, err := s.repo.ReadNotes()
	if err != nil {
		s.log.Warn("Failed to reload notes, using cached state", logger.F("error", err))
		return
	}
	s.notes = notes
}

// mutate applies fn to the latest saved collection and writes the result
// back. fn runs exactly once and reports whether it changed anything. Must be
// called with s.mu held.
func (s *Store) mutate(op string, fn func([]model.Note) ([]model.Note, bool)) bool {
	applied, changed := false, false
	next, err := s.repo.UpdateNotes(func(current []model.Note) ([]model.Note, bool) {
		applied = true
		if s.dirty {
			current = s.notes
		}
		var out []model.Note
		out, changed = fn(current)
		return out, changed
	})
	if !applied {
		next, changed = fn(s.notes)
	}

	if err != nil {
		s.log.Warn("Failed to persist notes, keeping in-memory state",
			logger.F("op", op), logger.F("error", err))
		if changed {
			s.dirty = true
		}
	} else if changed {
		s.dirty = false
	}

	if next == nil {
		next = []model.Note{}
	}
	s.notes = next
	return changed
}

func indexOf(notes []model.Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}

// Create validates form and prepends a new note
func (s *Store) Create(form model.FormData) (model.Note, error) {
	form, err := s.validate.check(form)
	if err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := model.Note{
		ID:        s.newID(),
		Title:     form.Title,
		Body:      form.Body,
		Color:     form.Color,
		DueAt:     copyTime(form.DueAt),
		CreatedAt: s.now(),
		Notified:  false,
	}
	s.mutate("create", func(notes []model.Note) ([]model.Note, bool) {
		return append([]model.Note{note.Clone()}, notes...), true
	})

	s.log.Debug("Note created", logger.F("id", note.ID))
	return note, nil
}

// Update overwrites title, body, color and due date of the note with id and
// resets its notified flag. The bool is false when no such note exists.
func (s *Store) Update(id string, form model.FormData) (model.Note, bool, error) {
	form, err := s.validate.check(form)
	if err != nil {
		return model.Note{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated model.Note
	found := s.mutate("update", func(notes []model.Note) ([]model.Note, bool) {
		i := indexOf(notes, id)
		if i < 0 {
			return notes, false
		}
		n := &notes[i]
		n.Title = form.Title
		n.Body = form.Body
		n.Color = form.Color
		n.DueAt = copyTime(form.DueAt)
		n.Notified = false
		updated = n.Clone()
		return notes, true
	})
	if !found {
		return model.Note{}, false, nil
	}

	s.log.Debug("Note updated", logger.F("id", id))
	return updated, true, nil
}

// Delete removes the note with id
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := s.mutate("delete", func(notes []model.Note) ([]model.Note, bool) {
		i := indexOf(notes, id)
		if i < 0 {
			return notes, false
		}
		return append(notes[:i:i], notes[i+1:]...), true
	})
	if deleted {
		s.log.Debug("Note deleted", logger.F("id", id))
	}
	return deleted
}

// ClearAll removes every note
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	s.mutate("clear", func(notes []model.Note) ([]model.Note, bool) {
		count = len(notes)
		return []model.Note{}, true
	})

	s.log.Info("All notes cleared", logger.F("removed", count))
}

// SetNotified sets the notified flag of the note with id
func (s *Store) SetNotified(id string, value bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate("set-notified", func(notes []model.Note) ([]model.Note, bool) {
		i := indexOf(notes, id)
		if i < 0 {
			return notes, false
		}
		notes[i].Notified = value
		return notes, true
	})
}

// Acknowledge marks a due note as notified, but only if it still exists,
// is not yet notified and still carries dueAt. It reports whether the flag
// changed.
func (s *Store) Acknowledge(id string, dueAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate("acknowledge", func(notes []model.Note) ([]model.Note, bool) {
		i := indexOf(notes, id)
		if i < 0 {
			return notes, false
		}
		n := &notes[i]
		if n.Notified || n.DueAt == nil || !n.DueAt.Equal(dueAt) {
			return notes, false
		}
		n.Notified = true
		return notes, true
	})
}

// Due returns notes with a due date at or before now that are not notified
func (s *Store) Due(now time.Time) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()

	var due []model.Note
	for i := range s.notes {
		n := &s.notes[i]
		if !n.Notified && n.IsOverdue(now) {
			due = append(due, n.Clone())
		}
	}
	return due
}

// List returns the notes passing filter and search, in store order
func (s *Store) List(filter model.Filter, search string) []model.Note {
	now := s.now()
	search = strings.TrimSpace(search)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()

	out := make([]model.Note, 0, len(s.notes))
	for i := range s.notes {
		n := &s.notes[i]
		if filter.Accept(n, now) && n.Matches(search) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// All returns every note in store order
func (s *Store) All() []model.Note {
	return s.List(model.FilterAll, "")
}

// Len returns the number of notes
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return len(s.notes)
}

// Get returns the note with exactly this id
func (s *Store) Get(id string) (model.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()

	if i := indexOf(s.notes, id); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return model.Note{}, false
}

// Resolve finds a note by full id or by a unique id prefix
func (s *Store) Resolve(ref string) (model.Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Note{}, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()

	if i := indexOf(s.notes, ref); i >= 0 {
		return s.notes[i].Clone(), nil
	}

	var match *model.Note
	for i := range s.notes {
		if strings.HasPrefix(s.notes[i].ID, ref) {
			if match != nil {
				return model.Note{}, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
			}
			match = &s.notes[i]
		}
	}
	if match == nil {
		return model.Note{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match.Clone(), nil
}

// Merge prepends imported notes ahead of the existing ones. Imported notes
// whose id is already taken get a fresh id. It returns the notes as stored.
func (s *Store) Merge(imported []model.Note) []model.Note {
	if len(imported) == 0 {
		return []model.Note{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var merged []model.Note
	renamed := 0
	s.mutate("merge", func(notes []model.Note) ([]model.Note, bool) {
		taken := make(map[string]struct{}, len(notes)+len(imported))
		for i := range notes {
			taken[notes[i].ID] = struct{}{}
		}

		merged = make([]model.Note, 0, len(imported))
		renamed = 0
		for _, n := range imported {
			n = n.Clone()
			if _, dup := taken[n.ID]; dup || n.ID == "" {
				n.ID = s.freshID(taken)
				renamed++
			}
			taken[n.ID] = struct{}{}
			merged = append(merged, n)
		}

		out := make([]model.Note, 0, len(merged)+len(notes))
		for i := range merged {
			out = append(out, merged[i].Clone())
		}
		return append(out, notes...), true
	})

	s.log.Info("Notes imported", logger.F("count", len(merged)), logger.F("renamed", renamed))
	return merged
}

func (s *Store) freshID(taken map[string]struct{}) string {
	for {
		id := s.newID()
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
