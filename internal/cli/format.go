package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/reminder"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// dueLabel describes a note's reminder relative to now
func dueLabel(n *model.Note, now time.Time) string {
	if !n.HasReminder() {
		return ""
	}
	when := n.DueAt.Local().Format("Jan 2 15:04")
	switch {
	case reminder.StateOf(*n) == reminder.StateFired:
		return "✓ " + when
	case n.IsOverdue(now):
		return "⏰ " + when + " (overdue)"
	default:
		return "◷ " + when
	}
}

func printNotes(w io.Writer, title string, notes []model.Note, now time.Time) {
	fmt.Fprintf(w, "\n📝 %s (%d)\n", title, len(notes))
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for i := range notes {
		printNoteLine(w, &notes[i], now)
	}
	fmt.Fprintln(w)
}

func printNoteLine(w io.Writer, n *model.Note, now time.Time) {
	text := n.DisplayTitle()
	if n.Title == "" {
		text = strings.ReplaceAll(n.Body, "\n", " ")
	}
	fmt.Fprintf(w, "  %-8s  %-6s  %-36s  %s\n",
		shortID(n.ID), model.ColorLabel(n.Color), truncate(text, 36), dueLabel(n, now))
}

func printNote(w io.Writer, n *model.Note, now time.Time) {
	fmt.Fprintf(w, "ID:       %s\n", n.ID)
	fmt.Fprintf(w, "Title:    %s\n", n.DisplayTitle())
	fmt.Fprintf(w, "Color:    %s (%s)\n", model.ColorLabel(n.Color), n.Color)
	fmt.Fprintf(w, "Created:  %s\n", n.CreatedAt.Local().Format("2006-01-02 15:04"))
	if n.HasReminder() {
		fmt.Fprintf(w, "Due:      %s\n", dueLabel(n, now))
		fmt.Fprintf(w, "Reminder: %s\n", reminder.StateOf(*n))
	}
	if n.Body != "" {
		fmt.Fprintf(w, "\n%s\n", n.Body)
	}
}
