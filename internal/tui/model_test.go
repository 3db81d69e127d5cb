package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/notes"
	"github.com/existflow/sticky/internal/reminder"
	"github.com/existflow/sticky/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

type fakePrefs struct {
	dark bool
	err  error
}

func (p *fakePrefs) Dark() bool { return p.dark }

func (p *fakePrefs) SetDark(dark bool) error {
	if p.err != nil {
		return p.err
	}
	p.dark = dark
	return nil
}

func newTestModel(t *testing.T, confirm bool) (Model, *notes.Store) {
	t.Helper()
	n := 0
	store := notes.New(storage.NewAdapter(storage.NewMemorySlots()),
		notes.WithClock(func() time.Time { return epoch }),
		notes.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }))
	m := NewModel(Options{
		Store:         store,
		Prefs:         &fakePrefs{},
		ExportDir:     t.TempDir(),
		ConfirmDelete: confirm,
	})
	m.width, m.height = 100, 30
	return m, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func TestAddNoteThroughForm(t *testing.T) {
	m, store := newTestModel(t, true)

	m = press(t, m, runes("a"))
	require.Equal(t, ModeForm, m.mode)

	m = typeText(t, m, "Pay rent")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "+1h")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeNormal, m.mode)
	require.Equal(t, 1, store.Len())
	n := store.All()[0]
	assert.Equal(t, "Pay rent", n.Title)
	assert.Equal(t, model.Palette[1].Hex, n.Color)
	require.NotNil(t, n.DueAt)
	assert.True(t, n.DueAt.Equal(epoch.Add(time.Hour)))
	assert.Contains(t, m.message, "Added")
}

func TestEmptyFormStaysOpen(t *testing.T) {
	m, store := newTestModel(t, true)

	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, notes.ErrEmptyNote.Error(), m.form.err)
	assert.Equal(t, 0, store.Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
}

func TestBadDueKeepsFormOpen(t *testing.T) {
	m, store := newTestModel(t, true)

	m = press(t, m, runes("a"))
	m = typeText(t, m, "x")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "someday")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeForm, m.mode)
	assert.NotEmpty(t, m.form.err)
	assert.Equal(t, 0, store.Len())
}

func TestEditPrefillsAndResetsNotified(t *testing.T) {
	m, store := newTestModel(t, true)
	due := epoch.Add(-time.Minute)
	n, err := store.Create(model.FormData{Title: "old", Body: "b", DueAt: &due})
	require.NoError(t, err)
	require.True(t, store.SetNotified(n.ID, true))
	m.loadData()

	m = press(t, m, runes("e"))
	require.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "old", m.form.title.Value())
	assert.Equal(t, "b", m.form.body.Value())
	assert.Equal(t, model.FormatDue(&due, time.UTC), m.form.due.Value())

	m = typeText(t, m, "er")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := store.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "older", got.Title)
	assert.False(t, got.Notified)
}

func TestEditKeepsFieldsLeftUntouched(t *testing.T) {
	m, store := newTestModel(t, true)
	due := time.Date(2026, 4, 10, 10, 30, 42, 0, time.UTC)
	n, err := store.Create(model.FormData{Title: "Stand-up", Body: "line one\nline two", DueAt: &due})
	require.NoError(t, err)
	m.loadData()

	m = press(t, m, runes("e"))
	assert.Equal(t, "line one\nline two", m.form.body.Value())
	m = typeText(t, m, "er")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeNormal, m.mode)

	got, ok := store.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "Stand-uper", got.Title)
	assert.Equal(t, "line one\nline two", got.Body)
	require.NotNil(t, got.DueAt)
	assert.True(t, got.DueAt.Equal(due), "due moved to %s", got.DueAt)
}

func TestEditedDueIsParsed(t *testing.T) {
	m, store := newTestModel(t, true)
	due := time.Date(2026, 4, 10, 10, 30, 42, 0, time.UTC)
	n, err := store.Create(model.FormData{Title: "Stand-up", DueAt: &due})
	require.NoError(t, err)
	m.loadData()

	m = press(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldDue, m.form.focus)
	for range m.form.due.Value() {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = typeText(t, m, "+2h")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got, _ := store.Get(n.ID)
	require.NotNil(t, got.DueAt)
	assert.True(t, got.DueAt.Equal(epoch.Add(2*time.Hour)))
}

func TestBodyTakesNewlinesAndCtrlSSaves(t *testing.T) {
	m, store := newTestModel(t, true)

	m = press(t, m, runes("a"))
	m = typeText(t, m, "List")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "eggs")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeForm, m.mode, "enter in the body adds a line")
	m = typeText(t, m, "milk")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, ModeNormal, m.mode)

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "eggs\nmilk", all[0].Body)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, store := newTestModel(t, true)
	_, err := store.Create(model.FormData{Title: "keep me"})
	require.NoError(t, err)
	m.loadData()

	m = press(t, m, runes("d"))
	require.Equal(t, ModeConfirm, m.mode)
	m = press(t, m, runes("n"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, store.Len())

	m = press(t, m, runes("d"), runes("y"))
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, m.notes)
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	m, store := newTestModel(t, false)
	_, err := store.Create(model.FormData{Title: "bye"})
	require.NoError(t, err)
	m.loadData()

	m = press(t, m, runes("d"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0, store.Len())
}

func TestClearAllAlwaysConfirms(t *testing.T) {
	m, store := newTestModel(t, false)
	for _, title := range []string{"a", "b"} {
		_, err := store.Create(model.FormData{Title: title})
		require.NoError(t, err)
	}
	m.loadData()

	m = press(t, m, runes("D"))
	require.Equal(t, ModeConfirm, m.mode)
	m = press(t, m, runes("y"))
	assert.Equal(t, 0, store.Len())
}

func TestFilterTabsAndSearch(t *testing.T) {
	m, store := newTestModel(t, true)
	past, future := epoch.Add(-time.Hour), epoch.Add(time.Hour)
	_, err := store.Create(model.FormData{Title: "late bill", DueAt: &past})
	require.NoError(t, err)
	_, err = store.Create(model.FormData{Title: "dentist", DueAt: &future})
	require.NoError(t, err)
	_, err = store.Create(model.FormData{Title: "idea", Body: "Bill Gates quote"})
	require.NoError(t, err)
	m.loadData()

	assert.Equal(t, map[model.Filter]int{model.FilterAll: 3, model.FilterOverdue: 1, model.FilterUpcoming: 1}, m.counts)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.FilterOverdue, m.filter)
	require.Len(t, m.notes, 1)
	assert.Equal(t, "late bill", m.notes[0].Title)

	m = press(t, m, runes("3"))
	require.Len(t, m.notes, 1)
	assert.Equal(t, "dentist", m.notes[0].Title)

	m = press(t, m, runes("1"), runes("/"))
	require.Equal(t, ModeSearch, m.mode)
	m = typeText(t, m, "bill")
	assert.Len(t, m.notes, 2)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "bill", m.search)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.search)
	assert.Len(t, m.notes, 3)
}

func TestAlertModalQueuesReminders(t *testing.T) {
	alerts := NewAlertNotifier(4)
	m, _ := newTestModel(t, true)
	m.alerts = alerts.C()

	require.NoError(t, alerts.Notify(context.Background(), reminder.Reminder{NoteID: "1", Title: "first", Body: "x"}))
	require.NoError(t, alerts.Notify(context.Background(), reminder.Reminder{NoteID: "2", Title: "second", Body: "y"}))

	for i := 0; i < 2; i++ {
		msg := m.waitForAlert()()
		m = press(t, m, msg)
	}
	require.Equal(t, ModeAlert, m.mode)
	assert.Equal(t, "first", m.alert.Title)
	assert.Contains(t, m.View(), "first")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeAlert, m.mode)
	assert.Equal(t, "second", m.alert.Title)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
}

func TestAlertRestoresOpenForm(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = press(t, m, runes("a"))
	m = typeText(t, m, "draft")

	m = press(t, m, alertMsg(reminder.Reminder{Title: "ding"}))
	require.Equal(t, ModeAlert, m.mode)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "draft", m.form.title.Value())
}

func TestAlertNotifierNeverBlocks(t *testing.T) {
	a := NewAlertNotifier(1)
	require.NoError(t, a.Notify(context.Background(), reminder.Reminder{}))
	assert.ErrorIs(t, a.Notify(context.Background(), reminder.Reminder{}), errAlertQueueFull)
	assert.Equal(t, reminder.PermissionGranted, a.Permission())
}

func TestThemeTogglePersists(t *testing.T) {
	m, _ := newTestModel(t, true)
	prefs := m.prefs.(*fakePrefs)

	m = press(t, m, runes("t"))
	assert.True(t, m.dark)
	assert.True(t, prefs.dark)

	prefs.err = errors.New("disk full")
	m = press(t, m, runes("t"))
	assert.False(t, m.dark)
	assert.True(t, prefs.dark)
	assert.Equal(t, "Theme changed but not saved", m.message)
}

func TestResetRearmsReminder(t *testing.T) {
	m, store := newTestModel(t, true)
	due := epoch
	n, err := store.Create(model.FormData{Title: "again", DueAt: &due})
	require.NoError(t, err)
	store.SetNotified(n.ID, true)
	m.loadData()

	m = press(t, m, runes("r"))
	got, _ := store.Get(n.ID)
	assert.False(t, got.Notified)
	assert.Equal(t, "Reminder re-armed", m.message)
}

func TestExportThenImport(t *testing.T) {
	m, store := newTestModel(t, true)
	_, err := store.Create(model.FormData{Title: "exported"})
	require.NoError(t, err)
	m.loadData()

	m = press(t, m, runes("x"))
	require.Contains(t, m.message, "Exported 1 notes")

	entries, err := os.ReadDir(m.exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	path := filepath.Join(m.exportDir, entries[0].Name())

	m = press(t, m, runes("i"))
	require.Equal(t, ModeImport, m.mode)
	m = typeText(t, m, path)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Imported 1 notes", m.message)
	all := store.All()
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.Equal(t, "exported", all[0].Title)
}

func TestImportErrorIsShown(t *testing.T) {
	m, store := newTestModel(t, true)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"array"}`), 0644))

	m = press(t, m, runes("i"))
	m = typeText(t, m, path)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, m.message, "invalid format, array expected")
	assert.Equal(t, 0, store.Len())
}

func TestViewRendersNotes(t *testing.T) {
	m, store := newTestModel(t, true)
	_, err := store.Create(model.FormData{Title: "Visible title", Body: "first line\nsecond"})
	require.NoError(t, err)
	m.loadData()

	out := m.View()
	assert.Contains(t, out, "Sticky Notes")
	assert.Contains(t, out, "Visible title")
	assert.Contains(t, out, "first line")
}
