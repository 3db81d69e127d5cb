package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/notes"
	"github.com/existflow/sticky/internal/reminder"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
	ModeSearch
	ModeConfirm
	ModeAlert
	ModeImport
	ModeHelp
)

// form field order
const (
	fieldTitle = iota
	fieldBody
	fieldDue
	fieldColor
	fieldCount
)

// Prefs persists the theme flag
type Prefs interface {
	Dark() bool
	SetDark(dark bool) error
}

// Options wires the board to the rest of the app
type Options struct {
	Store         *notes.Store
	Prefs         Prefs
	Alerts        <-chan reminder.Reminder
	ExportDir     string
	ConfirmDelete bool
}

type formState struct {
	title     textinput.Model
	body      textarea.Model
	due       textinput.Model
	focus     int
	color     string
	editingID string // empty when creating
	err       string

	// prefilled values of the note being edited; fields whose text is
	// left as prefilled keep these exact values
	origTitle, origTitleText string
	origDue                  *time.Time
	origDueText              string
}

type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmClearAll
)

type confirmState struct {
	action confirmAction
	noteID string
	prompt string
}

// Model is the main TUI model
type Model struct {
	store         *notes.Store
	prefs         Prefs
	alerts        <-chan reminder.Reminder
	exportDir     string
	confirmDelete bool

	notes  []model.Note // visible notes after filter and search
	counts map[model.Filter]int
	filter model.Filter
	search string
	cursor int
	dark   bool

	width  int
	height int
	mode   Mode

	form     formState
	input    textinput.Model // search and import path
	confirm  confirmState
	alert    reminder.Reminder
	alertQ   []reminder.Reminder
	prevMode Mode
	message  string
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 50

	m := Model{
		store:         opts.Store,
		prefs:         opts.Prefs,
		alerts:        opts.Alerts,
		exportDir:     opts.ExportDir,
		confirmDelete: opts.ConfirmDelete,
		filter:        model.FilterAll,
		mode:          ModeNormal,
		input:         ti,
		counts:        make(map[model.Filter]int, len(model.Filters)),
	}
	if m.prefs != nil {
		m.dark = m.prefs.Dark()
	}

	m.loadData()
	logger.Debug("TUI model initialized", logger.F("notes", len(m.notes)))
	return m
}

func newForm() formState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 44

	body := textarea.New()
	body.Placeholder = "Write something..."
	body.CharLimit = 5000
	body.ShowLineNumbers = false
	body.SetWidth(46)
	body.SetHeight(4)

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DDTHH:MM or +30m (empty: no reminder)"
	due.CharLimit = 40
	due.Width = 44

	return formState{title: title, body: body, due: due, color: model.DefaultColor()}
}

// loadData refreshes the visible notes and the per-filter counts
func (m *Model) loadData() {
	now := m.store.Now()
	all := m.store.All()
	for _, f := range model.Filters {
		m.counts[f] = 0
	}
	for i := range all {
		for _, f := range model.Filters {
			if f.Accept(&all[i], now) {
				m.counts[f]++
			}
		}
	}

	m.notes = m.store.List(m.filter, m.search)
	if m.cursor >= len(m.notes) {
		m.cursor = len(m.notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentNote() *model.Note {
	if m.cursor < len(m.notes) {
		return &m.notes[m.cursor]
	}
	return nil
}
