// Package storage persists the note collection and the theme flag into
// key-value slots. Missing or corrupt data is logged and treated as empty.
// Read and write errors are returned so callers can log them.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
)

// Slot keys
const (
	NotesKey = "sticky_notes_v1"
	ThemeKey = "dark_mode"
)

// Slots is a durable string key-value store
type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Update reads key and writes fn's result in one transaction. Nothing is
	// written when fn returns false or an error.
	Update(ctx context.Context, key string, fn func(value string, ok bool) (string, bool, error)) error
}

// Adapter serializes notes and the theme flag into Slots
type Adapter struct {
	slots Slots
	log   *logger.Logger
}

// NewAdapter creates an adapter over slots
func NewAdapter(slots Slots) *Adapter {
	return &Adapter{
		slots: slots,
		log:   logger.WithFields(logger.F("component", "storage")),
	}
}

// LoadNotes returns the saved collection, or an empty one when nothing is
// saved, the payload is not a JSON array of notes or the read fails
func (a *Adapter) LoadNotes() []model.Note {
	notes, err := a.ReadNotes()
	if err != nil {
		a.log.Warn("Failed to read notes, starting empty", logger.F("error", err))
		return []model.Note{}
	}
	a.log.Debug("Notes loaded", logger.F("count", len(notes)))
	return notes
}

// ReadNotes is LoadNotes without the fallback for read errors
func (a *Adapter) ReadNotes() ([]model.Note, error) {
	raw, ok, err := a.slots.Get(context.Background(), NotesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return a.decodeNotes(raw, ok), nil
}

func (a *Adapter) decodeNotes(raw string, ok bool) []model.Note {
	if !ok || raw == "" {
		return []model.Note{}
	}

	var notes []model.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		a.log.Warn("Stored notes are corrupt, treating as empty", logger.F("error", err))
		return []model.Note{}
	}
	if notes == nil {
		return []model.Note{}
	}
	return notes
}

func encodeNotes(notes []model.Note) (string, error) {
	if notes == nil {
		notes = []model.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("failed to encode notes: %w", err)
	}
	return string(data), nil
}

// SaveNotes overwrites the notes slot with the full collection
func (a *Adapter) SaveNotes(notes []model.Note) error {
	data, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	if err := a.slots.Set(context.Background(), NotesKey, data); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// UpdateNotes decodes the current notes slot, hands it to fn and saves the
// result in the same transaction when fn reports a change. Writers in other
// processes are serialized by the slot store, so none of their changes are
// lost. The collection fn returned is passed back even when the save fails.
func (a *Adapter) UpdateNotes(fn func([]model.Note) ([]model.Note, bool)) ([]model.Note, error) {
	var next []model.Note
	err := a.slots.Update(context.Background(), NotesKey, func(raw string, ok bool) (string, bool, error) {
		var changed bool
		next, changed = fn(a.decodeNotes(raw, ok))
		if !changed {
			return "", false, nil
		}
		data, err := encodeNotes(next)
		if err != nil {
			return "", false, err
		}
		return data, true, nil
	})
	if err != nil {
		return next, fmt.Errorf("failed to save notes: %w", err)
	}
	return next, nil
}

// Dark returns the persisted theme flag; anything but "true" is false
func (a *Adapter) Dark() bool {
	raw, _, err := a.slots.Get(context.Background(), ThemeKey)
	if err != nil {
		a.log.Warn("Failed to read theme", logger.F("error", err))
		return false
	}
	return raw == "true"
}

// SetDark persists the theme flag as "true" or "false"
func (a *Adapter) SetDark(dark bool) error {
	value := "false"
	if dark {
		value = "true"
	}
	if err := a.slots.Set(context.Background(), ThemeKey, value); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// MemorySlots keeps slots in memory
type MemorySlots struct {
	mu     sync.RWMutex
	values map[string]string
	// FailWrites makes every Set fail with this error
	FailWrites error
}

// NewMemorySlots creates an empty in-memory slot store
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string]string)}
}

// Get implements Slots
func (m *MemorySlots) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Slots
func (m *MemorySlots) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = value
	return nil
}

// Update implements Slots
func (m *MemorySlots) Update(_ context.Context, key string, fn func(value string, ok bool) (string, bool, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	next, write, err := fn(v, ok)
	if err != nil || !write {
		return err
	}
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = next
	return nil
}
