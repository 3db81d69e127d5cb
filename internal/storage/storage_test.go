package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/existflow/sticky/internal/db"
	"github.com/existflow/sticky/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNotesFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload *string
	}{
		{name: "no data", payload: nil},
		{name: "empty string", payload: ptr("")},
		{name: "not json", payload: ptr("not json")},
		{name: "object root", payload: ptr(`{"id":"x"}`)},
		{name: "null", payload: ptr("null")},
		{name: "wrong element types", payload: ptr(`[{"dueAt": 5}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := NewMemorySlots()
			if tt.payload != nil {
				require.NoError(t, slots.Set(context.Background(), NotesKey, *tt.payload))
			}
			notes := NewAdapter(slots).LoadNotes()
			assert.NotNil(t, notes)
			assert.Empty(t, notes)
		})
	}
}

func TestSaveThenLoadNotes(t *testing.T) {
	due := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	notes := []model.Note{
		{ID: "b", Title: "second", Color: "#dcfce7", DueAt: &due, CreatedAt: due.Add(-time.Hour)},
		{ID: "a", Body: "first", Color: "#fef3c7", CreatedAt: due.Add(-2 * time.Hour), Notified: true},
	}

	a := NewAdapter(NewMemorySlots())
	require.NoError(t, a.SaveNotes(notes))
	assert.Equal(t, notes, a.LoadNotes())
}

func TestSaveNotesNilWritesEmptyArray(t *testing.T) {
	slots := NewMemorySlots()
	require.NoError(t, NewAdapter(slots).SaveNotes(nil))

	raw, ok, err := slots.Get(context.Background(), NotesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestSaveNotesReportsWriteFailure(t *testing.T) {
	slots := NewMemorySlots()
	slots.FailWrites = errors.New("quota exceeded")

	err := NewAdapter(slots).SaveNotes([]model.Note{{ID: "a"}})
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestTheme(t *testing.T) {
	slots := NewMemorySlots()
	a := NewAdapter(slots)
	assert.False(t, a.Dark())

	require.NoError(t, a.SetDark(true))
	raw, _, _ := slots.Get(context.Background(), ThemeKey)
	assert.Equal(t, "true", raw)
	assert.True(t, a.Dark())

	require.NoError(t, a.SetDark(false))
	assert.False(t, a.Dark())

	require.NoError(t, slots.Set(context.Background(), ThemeKey, "yes"))
	assert.False(t, a.Dark())
}

func TestAdapterOverSQLite(t *testing.T) {
	d, err := db.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	defer d.Close()

	a := NewAdapter(d)
	require.NoError(t, a.SaveNotes([]model.Note{{ID: "x", Title: "kept", Color: "#fef3c7"}}))
	require.NoError(t, a.SetDark(true))

	got := a.LoadNotes()
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Title)
	assert.True(t, a.Dark())
}

func TestUpdateNotesAppliesToSavedCollection(t *testing.T) {
	slots := NewMemorySlots()
	a := NewAdapter(slots)
	require.NoError(t, a.SaveNotes([]model.Note{{ID: "a", Title: "saved"}}))

	got, err := a.UpdateNotes(func(notes []model.Note) ([]model.Note, bool) {
		require.Len(t, notes, 1)
		return append([]model.Note{{ID: "b", Title: "new"}}, notes...), true
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	loaded := a.LoadNotes()
	require.Len(t, loaded, 2)
	assert.Equal(t, "b", loaded[0].ID)
	assert.Equal(t, "a", loaded[1].ID)
}

func TestUpdateNotesSkipsUnchangedWrites(t *testing.T) {
	slots := NewMemorySlots()
	a := NewAdapter(slots)
	require.NoError(t, slots.Set(context.Background(), NotesKey, "not json"))

	_, err := a.UpdateNotes(func(notes []model.Note) ([]model.Note, bool) {
		assert.Empty(t, notes)
		return notes, false
	})
	require.NoError(t, err)

	raw, _, _ := slots.Get(context.Background(), NotesKey)
	assert.Equal(t, "not json", raw)
}

func TestUpdateNotesReturnsResultOnWriteFailure(t *testing.T) {
	slots := NewMemorySlots()
	slots.FailWrites = errors.New("quota exceeded")

	got, err := NewAdapter(slots).UpdateNotes(func(notes []model.Note) ([]model.Note, bool) {
		return append(notes, model.Note{ID: "a"}), true
	})
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Len(t, got, 1)
}

func TestUpdateNotesSerializesTwoConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	d1, err := db.Open(path)
	require.NoError(t, err)
	defer d1.Close()
	d2, err := db.Open(path)
	require.NoError(t, err)
	defer d2.Close()

	a1, a2 := NewAdapter(d1), NewAdapter(d2)
	const perWriter = 20

	var wg sync.WaitGroup
	for w, a := range []*Adapter{a1, a2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := a.UpdateNotes(func(notes []model.Note) ([]model.Note, bool) {
					id := fmt.Sprintf("w%d-%d", w, i)
					return append([]model.Note{{ID: id}}, notes...), true
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, a1.LoadNotes(), 2*perWriter)
}

func ptr(s string) *string { return &s }
