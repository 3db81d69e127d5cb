// Package exchange converts notes to and from portable JSON files.
package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/sticky/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Import clamps, applied in runes
const (
	MaxTitleLen = 200
	MaxBodyLen  = 5000
)

var colorCheck = validator.New()

// ErrInvalidFormat is returned when the document root is not an array
var ErrInvalidFormat = errors.New("invalid format, array expected")

// Export writes notes as a pretty-printed JSON array
func Export(w io.Writer, notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return nil
}

// FileName returns the export file name for time t
func FileName(t time.Time) string {
	return "sticky-notes-" + t.Format("2006-01-02-150405") + ".json"
}

// ExportFile writes notes into dir under FileName(now) and returns the path
func ExportFile(dir string, notes []model.Note, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, notes); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// Options tune Import. Zero values use uuid ids and time.Now.
type Options struct {
	NewID func() string
	Now   func() time.Time
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Import parses a JSON array of notes, filling defaults for missing or
// malformed fields. It does not resolve id collisions with existing notes.
func Import(r io.Reader, opts Options) ([]model.Note, error) {
	opts = opts.withDefaults()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("could not read JSON file: %w", err)
	}

	items, ok := root.([]any)
	if !ok {
		return nil, ErrInvalidFormat
	}

	notes := make([]model.Note, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		notes = append(notes, sanitize(fields, opts))
	}
	return notes, nil
}

// ImportFile reads and parses the file at path
func ImportFile(path string, opts Options) ([]model.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return Import(f, opts)
}

func sanitize(fields map[string]any, opts Options) model.Note {
	n := model.Note{
		ID:       stringField(fields, "id"),
		Title:    clamp(stringField(fields, "title"), MaxTitleLen),
		Body:     clamp(stringField(fields, "body"), MaxBodyLen),
		Color:    importColor(stringField(fields, "color")),
		DueAt:    timeField(fields, "dueAt"),
		Notified: truthy(fields["notified"]),
	}

	if n.ID == "" {
		n.ID = opts.NewID()
	}
	if created := timeField(fields, "createdAt"); created != nil {
		n.CreatedAt = *created
	} else {
		n.CreatedAt = opts.Now()
	}
	return n
}

// importColor maps palette ids to hex and replaces anything the note form
// would reject with the default color
func importColor(c string) string {
	c = model.ResolveColor(c)
	if colorCheck.Var(c, "hexcolor") != nil {
		return model.DefaultColor()
	}
	return c
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func timeField(fields map[string]any, key string) *time.Time {
	s := stringField(fields, key)
	if s == "" {
		return nil
	}
	t, err := model.ParseTime(s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// truthy follows JavaScript truthiness for JSON values
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

func clamp(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
