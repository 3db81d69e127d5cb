package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/reminder"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	st := newStyles(m.dark)

	var main string
	switch m.mode {
	case ModeForm:
		main = m.place(m.renderForm(st))
	case ModeConfirm:
		main = m.place(st.Modal.Render(
			lipgloss.NewStyle().Bold(true).Render(m.confirm.prompt) + "\n\n" +
				st.Help.Render("y:yes  n/Esc:no")))
	case ModeAlert:
		main = m.place(m.renderAlert(st))
	case ModeImport:
		main = m.place(st.Modal.Width(60).Render(
			lipgloss.NewStyle().Bold(true).Render("Import notes") + "\n\n" +
				m.input.View() + "\n\n" +
				st.Help.Render("Enter:import  Esc:cancel")))
	case ModeHelp:
		main = m.renderHelp()
	default:
		main = lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(st), m.renderNotes(st))
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar(st))
}

func (m Model) place(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderHeader(st styles) string {
	title := st.Header.Render("Sticky Notes")

	tabs := make([]string, 0, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("%d %s (%d)", i+1, filterLabel(f), m.counts[f])
		if f == m.filter {
			tabs = append(tabs, st.TabActive.Render(label))
		} else {
			tabs = append(tabs, st.Tab.Render(label))
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title}, tabs...)...)
	if m.search != "" {
		line += st.Help.Render(fmt.Sprintf("  /%s", m.search))
	}
	rule := lipgloss.NewStyle().Foreground(st.p.Border).Render(strings.Repeat("─", max(m.width, 1)))
	return line + "\n" + rule
}

func filterLabel(f model.Filter) string {
	switch f {
	case model.FilterOverdue:
		return "Overdue"
	case model.FilterUpcoming:
		return "Upcoming"
	default:
		return "All"
	}
}

func (m Model) renderNotes(st styles) string {
	height := m.height - 4
	if len(m.notes) == 0 {
		empty := "  No notes. Press 'a' to add one."
		if m.search != "" || m.filter != model.FilterAll {
			empty = "  Nothing matches. Press Tab to change the filter or Esc to clear the search."
		}
		return lipgloss.NewStyle().Height(height).Render(st.Help.Render(empty))
	}

	// Each card takes two lines; keep the cursor in view
	perPage := max(height/2, 1)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(start+perPage, len(m.notes))

	now := m.store.Now()
	width := max(m.width-4, 20)
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(st, &m.notes[i], i == m.cursor, width, now))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Height(height).Render(b.String())
}

func (m Model) renderCard(st styles, n *model.Note, focused bool, width int, now time.Time) string {
	base := st.Card
	if focused {
		base = st.CardFocused
	}

	due := m.renderDue(st, n, now)
	titleWidth := max(width-lipgloss.Width(due)-4, 8)
	head := fmt.Sprintf("%-*s", titleWidth, truncate(n.DisplayTitle(), titleWidth))
	body := truncate(firstLine(n.Body), width-2)

	card := cardStyle(base, n.Color).Width(width).Render(head + "\n" + body)
	if due == "" {
		return card
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, card, " ", due)
}

func (m Model) renderDue(st styles, n *model.Note, now time.Time) string {
	if !n.HasReminder() {
		return ""
	}
	when := n.DueAt.Local().Format("Jan 2 15:04")
	switch {
	case reminder.StateOf(*n) == reminder.StateFired:
		return st.Fired.Render("✓ " + when)
	case n.IsOverdue(now):
		return st.Overdue.Render("⏰ " + when)
	default:
		return st.Upcoming.Render("◷ " + when)
	}
}

func (m Model) renderForm(st styles) string {
	heading := "New note"
	if m.form.editingID != "" {
		heading = "Edit note"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(heading) + "\n\n")
	b.WriteString(st.Label.Render("Title") + m.form.title.View() + "\n")
	b.WriteString(st.Label.Render("Body") + "\n" + m.form.body.View() + "\n")
	b.WriteString(st.Label.Render("Due") + m.form.due.View() + "\n")

	color := fmt.Sprintf("%s %s", swatch(m.form.color), model.ColorLabel(m.form.color))
	if m.form.focus == fieldColor {
		color = "‹ " + color + " ›"
	}
	b.WriteString(st.Label.Render("Color") + color + "\n")

	if m.form.err != "" {
		b.WriteString("\n" + st.Error.Render(m.form.err) + "\n")
	}
	b.WriteString("\n" + st.Help.Render("Tab:next field  ←/→:color  Enter:save (Ctrl+S in body)  Esc:cancel"))

	return st.Modal.Width(60).Render(b.String())
}

func (m Model) renderAlert(st styles) string {
	content := lipgloss.NewStyle().Bold(true).Foreground(st.p.Overdue).Render("⏰ "+m.alert.Title) + "\n\n" +
		lipgloss.NewStyle().Width(50).Render(m.alert.Body) + "\n\n"
	if n := len(m.alertQ); n > 0 {
		content += st.Help.Render(fmt.Sprintf("%d more reminder(s)", n)) + "\n"
	}
	content += st.Help.Render("Enter:dismiss")
	return st.AlertModal.Render(content)
}

func (m Model) renderStatusBar(st styles) string {
	if m.mode == ModeSearch {
		return st.StatusBar.Width(m.width).Render(fmt.Sprintf("/%s  [%d]", m.input.View(), len(m.notes)))
	}

	help := "a:add  e:edit  d:del  D:clear  r:re-arm  tab:filter  /:search  t:theme  x:export  i:import  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return st.StatusBar.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	help := `
╭──── Keyboard Shortcuts ────╮
│                            │
│  Navigation                │
│  ──────────                │
│  j/↓      Move down        │
│  k/↑      Move up          │
│  g/G      Top / bottom     │
│  Tab      Next filter      │
│  1-3      All/Overdue/Up   │
│  /        Search           │
│                            │
│  Notes                     │
│  ─────                     │
│  a        Add note         │
│  e/Enter  Edit note        │
│  d        Delete note      │
│  D        Clear all        │
│  r        Re-arm reminder  │
│                            │
│  Other                     │
│  ─────                     │
│  t        Dark/light       │
│  x        Export JSON      │
│  i        Import JSON      │
│  ?        Toggle help      │
│  q        Quit             │
│                            │
╰────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
