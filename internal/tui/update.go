package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/sticky/internal/exchange"
	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/reminder"
)

// tickMsg is sent every second so overdue markers stay current
type tickMsg time.Time

// alertMsg carries a reminder fired by the monitor
type alertMsg reminder.Reminder

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForAlert())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForAlert listens for reminders from the monitor
func (m Model) waitForAlert() tea.Cmd {
	if m.alerts == nil {
		return nil
	}
	ch := m.alerts
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return alertMsg(r)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.loadData()
		return m, tickCmd()

	case alertMsg:
		// The monitor has already flipped the note to notified
		m.loadData()
		m.showAlert(reminder.Reminder(msg))
		return m, m.waitForAlert()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		case ModeAlert:
			return m.updateAlert(msg)
		case ModeImport:
			return m.updateImport(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Top):
		m.cursor = 0

	case key.Matches(msg, keys.Bottom):
		m.cursor = max(len(m.notes)-1, 0)

	case key.Matches(msg, keys.NextFilter):
		m.setFilter(m.filter.Next())

	case key.Matches(msg, keys.PrevFilter):
		m.setFilter(prevFilter(m.filter))

	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		m.setFilter(model.Filters[msg.String()[0]-'1'])

	case key.Matches(msg, keys.Search):
		return m.startSearch()

	case key.Matches(msg, keys.Add):
		return m.startForm(nil)

	case key.Matches(msg, keys.Edit):
		if n := m.currentNote(); n != nil {
			return m.startForm(n)
		}

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.ClearAll):
		m.handleClearAll()

	case key.Matches(msg, keys.Reset):
		m.handleReset()

	case key.Matches(msg, keys.Theme):
		m.handleTheme()

	case key.Matches(msg, keys.Export):
		m.handleExport()

	case key.Matches(msg, keys.Import):
		return m.startImport()

	case key.Matches(msg, keys.Escape):
		if m.search != "" {
			m.search = ""
			m.loadData()
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) setFilter(f model.Filter) {
	m.filter = f
	m.cursor = 0
	m.loadData()
}

func (m Model) startForm(n *model.Note) (tea.Model, tea.Cmd) {
	m.form = newForm()
	if n != nil {
		m.form.editingID = n.ID
		m.form.color = n.Color
		m.form.title.SetValue(n.Title)
		m.form.body.SetValue(n.Body)
		m.form.due.SetValue(model.FormatDue(n.DueAt, m.store.Now().Location()))

		m.form.origTitle = n.Title
		m.form.origTitleText = m.form.title.Value()
		m.form.origDue = n.DueAt
		m.form.origDueText = m.form.due.Value()
	}
	m.mode = ModeForm
	m.focusField(fieldTitle)
	return m, textinput.Blink
}

// focusField moves the form focus; the color row has no text input
func (m *Model) focusField(field int) {
	m.form.focus = field
	m.form.title.Blur()
	m.form.body.Blur()
	m.form.due.Blur()
	switch field {
	case fieldTitle:
		m.form.title.Focus()
	case fieldBody:
		m.form.body.Focus()
	case fieldDue:
		m.form.due.Focus()
	}
}

func (m Model) formBlink() tea.Cmd {
	if m.form.focus == fieldBody {
		return textarea.Blink
	}
	return textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inBody := m.form.focus == fieldBody

	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Submit), key.Matches(msg, keys.Enter) && !inBody:
		return m.submitForm()

	case msg.String() == "tab", msg.String() == "down" && !inBody:
		m.focusField((m.form.focus + 1) % fieldCount)
		return m, m.formBlink()

	case msg.String() == "shift+tab", msg.String() == "up" && !inBody:
		m.focusField((m.form.focus + fieldCount - 1) % fieldCount)
		return m, m.formBlink()
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case fieldBody:
		m.form.body, cmd = m.form.body.Update(msg)
	case fieldDue:
		m.form.due, cmd = m.form.due.Update(msg)
	case fieldColor:
		switch {
		case key.Matches(msg, keys.ColorNext), msg.String() == " ":
			m.form.color = model.NextColor(m.form.color)
		case key.Matches(msg, keys.ColorPrev):
			m.form.color = prevColor(m.form.color)
		}
		return m, nil
	}
	m.form.err = ""
	return m, cmd
}

// formData reads the form. Fields still showing their prefilled text keep
// the note's exact title and due date, which the inputs cannot represent.
func (m Model) formData() (model.FormData, error) {
	f := m.form
	editing := f.editingID != ""

	title := f.title.Value()
	if editing && title == f.origTitleText {
		title = f.origTitle
	}

	var due *time.Time
	if editing && strings.TrimSpace(f.due.Value()) == f.origDueText {
		due = f.origDue
	} else {
		var err error
		if due, err = model.ParseDue(f.due.Value(), m.store.Now()); err != nil {
			return model.FormData{}, err
		}
	}

	return model.FormData{
		Title: title,
		Body:  f.body.Value(),
		Color: f.color,
		DueAt: due,
	}, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	form, err := m.formData()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}

	var saved model.Note
	if m.form.editingID == "" {
		saved, err = m.store.Create(form)
		if err == nil {
			m.message = fmt.Sprintf("Added: %s", saved.DisplayTitle())
		}
	} else {
		var found bool
		saved, found, err = m.store.Update(m.form.editingID, form)
		if err == nil && !found {
			m.mode = ModeNormal
			m.message = "Note no longer exists"
			m.loadData()
			return m, nil
		}
		if err == nil {
			m.message = fmt.Sprintf("Updated: %s", saved.DisplayTitle())
		}
	}
	if err != nil {
		// keep the form open so the user can fix it
		m.form.err = err.Error()
		return m, nil
	}

	m.mode = ModeNormal
	m.loadData()
	m.selectNote(saved.ID)
	return m, nil
}

func (m *Model) selectNote(id string) {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) handleDelete() {
	n := m.currentNote()
	if n == nil {
		return
	}
	if m.confirmDelete {
		m.askConfirm(confirmState{
			action: confirmDelete,
			noteID: n.ID,
			prompt: fmt.Sprintf("Delete %q?", truncate(n.DisplayTitle(), 40)),
		})
		return
	}
	m.deleteNote(n.ID)
}

func (m *Model) handleClearAll() {
	if m.store.Len() == 0 {
		m.message = "Nothing to clear"
		return
	}
	m.askConfirm(confirmState{
		action: confirmClearAll,
		prompt: fmt.Sprintf("Delete all %d notes?", m.store.Len()),
	})
}

func (m *Model) askConfirm(c confirmState) {
	m.confirm = c
	m.mode = ModeConfirm
}

func (m *Model) deleteNote(id string) {
	if m.store.Delete(id) {
		m.message = "Note deleted"
	} else {
		m.message = "Note no longer exists"
	}
	m.loadData()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		m.mode = ModeNormal
		switch m.confirm.action {
		case confirmDelete:
			m.deleteNote(m.confirm.noteID)
		case confirmClearAll:
			m.store.ClearAll()
			m.cursor = 0
			m.loadData()
			m.message = "All notes cleared"
		}

	case key.Matches(msg, keys.No):
		m.mode = ModeNormal
		m.message = "Cancelled"
	}
	return m, nil
}

func (m *Model) handleReset() {
	n := m.currentNote()
	if n == nil {
		return
	}
	switch {
	case !n.HasReminder():
		m.message = "Note has no reminder"
	case !n.Notified:
		m.message = "Reminder is already pending"
	default:
		m.store.SetNotified(n.ID, false)
		m.loadData()
		m.message = "Reminder re-armed"
	}
}

func (m *Model) handleTheme() {
	m.dark = !m.dark
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetDark(m.dark); err != nil {
		logger.Warn("Failed to save theme", logger.F("error", err))
		m.message = "Theme changed but not saved"
		return
	}
	if m.dark {
		m.message = "Dark mode"
	} else {
		m.message = "Light mode"
	}
}

func (m *Model) handleExport() {
	path, err := exchange.ExportFile(m.exportDir, m.store.All(), m.store.Now())
	if err != nil {
		logger.Error("Export failed", logger.F("error", err))
		m.message = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.message = fmt.Sprintf("Exported %d notes to %s", m.store.Len(), path)
}

func (m Model) startImport() (tea.Model, tea.Cmd) {
	m.mode = ModeImport
	m.input.SetValue("")
	m.input.Placeholder = "path/to/sticky-notes.json"
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.input.Blur()
		path := expandHome(strings.TrimSpace(m.input.Value()))
		if path == "" {
			return m, nil
		}
		m.importFile(path)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) importFile(path string) {
	imported, err := exchange.ImportFile(path, exchange.Options{NewID: m.store.NewID, Now: m.store.Now})
	if err != nil {
		logger.Warn("Import failed", logger.F("path", path), logger.F("error", err))
		m.message = fmt.Sprintf("Import failed: %v", err)
		return
	}
	merged := m.store.Merge(imported)
	m.cursor = 0
	m.loadData()
	m.message = fmt.Sprintf("Imported %d notes", len(merged))
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.mode = ModeSearch
	m.input.SetValue(m.search)
	m.input.Placeholder = "search title or body"
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		m.search = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// live filter as the user types
	m.search = m.input.Value()
	m.cursor = 0
	m.loadData()
	return m, cmd
}

func (m *Model) showAlert(r reminder.Reminder) {
	if m.mode == ModeAlert {
		m.alertQ = append(m.alertQ, r)
		return
	}
	m.prevMode = m.mode
	m.alert = r
	m.mode = ModeAlert
}

func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ", "q":
	default:
		return m, nil
	}

	if len(m.alertQ) > 0 {
		m.alert = m.alertQ[0]
		m.alertQ = m.alertQ[1:]
		return m, nil
	}
	m.mode = m.prevMode
	return m, nil
}
