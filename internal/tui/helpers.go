package tui

import (
	"strings"

	"github.com/existflow/sticky/internal/model"
)

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	switch {
	case len(r) <= max:
		return s
	case max <= 0:
		return ""
	case max <= 3:
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// firstLine returns the first non-empty line of s
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// prevColor is the inverse of model.NextColor
func prevColor(c string) string {
	for i, opt := range model.Palette {
		if strings.EqualFold(opt.Hex, c) {
			return model.Palette[(i+len(model.Palette)-1)%len(model.Palette)].Hex
		}
	}
	return model.DefaultColor()
}

func prevFilter(f model.Filter) model.Filter {
	for i, x := range model.Filters {
		if x == f {
			return model.Filters[(i+len(model.Filters)-1)%len(model.Filters)]
		}
	}
	return model.FilterAll
}
