package tui

import "github.com/charmbracelet/lipgloss"

// palette is the chrome around the notes; note cards keep their own color
type palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Overdue   lipgloss.Color
	Upcoming  lipgloss.Color
	Fired     lipgloss.Color
}

var (
	lightPalette = palette{
		Primary:   lipgloss.Color("#B45309"),
		Text:      lipgloss.Color("#1F2937"),
		TextMuted: lipgloss.Color("#6B7280"),
		Border:    lipgloss.Color("#D1D5DB"),
		Surface:   lipgloss.Color("#F3F4F6"),
		Overdue:   lipgloss.Color("#DC2626"),
		Upcoming:  lipgloss.Color("#2563EB"),
		Fired:     lipgloss.Color("#059669"),
	}

	darkPalette = palette{
		Primary:   lipgloss.Color("#FBBF24"),
		Text:      lipgloss.Color("#F9FAFB"),
		TextMuted: lipgloss.Color("#9CA3AF"),
		Border:    lipgloss.Color("#374151"),
		Surface:   lipgloss.Color("#1F2937"),
		Overdue:   lipgloss.Color("#F87171"),
		Upcoming:  lipgloss.Color("#60A5FA"),
		Fired:     lipgloss.Color("#34D399"),
	}

	// text on a note card; the pastel card colors are light in both themes
	cardInk = lipgloss.Color("#1F2937")
)

// styles is the rendered look for one theme
type styles struct {
	p palette

	Header      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	Overdue     lipgloss.Style
	Upcoming    lipgloss.Style
	Fired       lipgloss.Style
	StatusBar   lipgloss.Style
	Modal       lipgloss.Style
	AlertModal  lipgloss.Style
	Error       lipgloss.Style
	Label       lipgloss.Style
	Help        lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return styles{
		p: p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Foreground(cardInk).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Border),

		CardFocused: lipgloss.NewStyle().
			Foreground(cardInk).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(p.Primary),

		Overdue:  lipgloss.NewStyle().Foreground(p.Overdue).Bold(true),
		Upcoming: lipgloss.NewStyle().Foreground(p.Upcoming),
		Fired:    lipgloss.NewStyle().Foreground(p.Fired),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Border),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Foreground(p.Text).
			Padding(1, 2),

		AlertModal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Overdue).
			Foreground(p.Text).
			Padding(1, 2),

		Error: lipgloss.NewStyle().Foreground(p.Overdue),
		Label: lipgloss.NewStyle().Foreground(p.TextMuted).Width(7),
		Help:  lipgloss.NewStyle().Foreground(p.TextMuted),
	}
}

// swatch renders a small block in the note color
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// cardStyle tints base with the note color
func cardStyle(base lipgloss.Style, hex string) lipgloss.Style {
	return base.Background(lipgloss.Color(hex))
}
