package model

import "strings"

// ColorOption is a named entry of the note palette
type ColorOption struct {
	ID    string `json:"id"`
	Hex   string `json:"hex"`
	Label string `json:"label"`
}

// Palette lists the note colors; the first entry is the default
var Palette = []ColorOption{
	{ID: "yellow", Hex: "#fef3c7", Label: "Yellow"},
	{ID: "green", Hex: "#dcfce7", Label: "Green"},
	{ID: "blue", Hex: "#dbeafe", Label: "Blue"},
	{ID: "purple", Hex: "#f3e8ff", Label: "Purple"},
	{ID: "pink", Hex: "#fce7f3", Label: "Pink"},
	{ID: "orange", Hex: "#ffedd5", Label: "Orange"},
	{ID: "gray", Hex: "#f3f4f6", Label: "Gray"},
}

// DefaultColor returns the hex of the first palette entry
func DefaultColor() string {
	return Palette[0].Hex
}

// ResolveColor maps a palette id to its hex value. Empty input yields the
// default color; anything else is returned unchanged.
func ResolveColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultColor()
	}
	for _, opt := range Palette {
		if strings.EqualFold(opt.ID, c) {
			return opt.Hex
		}
	}
	return c
}

// NextColor returns the palette color after c, wrapping around.
// Unknown colors restart at the first entry.
func NextColor(c string) string {
	for i, opt := range Palette {
		if strings.EqualFold(opt.Hex, c) {
			return Palette[(i+1)%len(Palette)].Hex
		}
	}
	return DefaultColor()
}

// ColorLabel returns the palette label for a hex color, or the hex itself
func ColorLabel(hex string) string {
	for _, opt := range Palette {
		if strings.EqualFold(opt.Hex, hex) {
			return opt.Label
		}
	}
	return hex
}
