package reminder

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
	"golang.org/x/term"
)

// Permission is the state of the user's consent to alerts
type Permission int

const (
	PermissionDefault Permission = iota // not asked yet
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

const (
	maxBodyLen       = 120
	placeholderTitle = "Reminder"
	placeholderBody  = "Reminder: note is due"
)

// Reminder is the payload shown to the user for a due note
type Reminder struct {
	NoteID string
	Title  string
	Body   string
}

// NewReminder builds the alert for n, truncating long bodies
func NewReminder(n model.Note) Reminder {
	title := n.Title
	if title == "" {
		title = placeholderTitle
	}
	body := n.Body
	switch r := []rune(body); {
	case len(r) == 0:
		body = placeholderBody
	case len(r) > maxBodyLen:
		body = string(r[:maxBodyLen]) + "..."
	}
	return Reminder{NoteID: n.ID, Title: title, Body: body}
}

// Notifier delivers reminders to the user on a best-effort basis
type Notifier interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, r Reminder) error
}

// NotifierFunc adapts a function into an always-granted Notifier
type NotifierFunc func(ctx context.Context, r Reminder) error

func (f NotifierFunc) Permission() Permission { return PermissionGranted }

func (f NotifierFunc) RequestPermission(context.Context) (Permission, error) {
	return PermissionGranted, nil
}

func (f NotifierFunc) Notify(ctx context.Context, r Reminder) error { return f(ctx, r) }

// TerminalNotifier rings the bell and prints reminders. Permission is only
// granted when the output is an interactive terminal.
type TerminalNotifier struct {
	mu         sync.Mutex
	out        io.Writer
	fd         int
	hasFD      bool
	permission Permission
}

// NewTerminalNotifier writes to out; when out is an *os.File its descriptor
// decides the permission
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	n := &TerminalNotifier{out: out}
	if f, ok := out.(*os.File); ok {
		n.fd = int(f.Fd())
		n.hasFD = true
	}
	return n
}

func (t *TerminalNotifier) Permission() Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.permission
}

func (t *TerminalNotifier) RequestPermission(context.Context) (Permission, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.permission != PermissionDefault {
		return t.permission, nil
	}
	if t.hasFD && term.IsTerminal(t.fd) {
		t.permission = PermissionGranted
	} else {
		t.permission = PermissionDenied
	}
	return t.permission, nil
}

func (t *TerminalNotifier) Notify(_ context.Context, r Reminder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.permission != PermissionGranted {
		return fmt.Errorf("terminal notifications not permitted (%s)", t.permission)
	}
	if _, err := fmt.Fprintf(t.out, "\a⏰ %s: %s\n", r.Title, r.Body); err != nil {
		return fmt.Errorf("failed to write reminder: %w", err)
	}
	return nil
}

// LogNotifier records reminders in the log; used when no user is attached
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier writing to the global logger
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.WithFields(logger.F("component", "reminder"))}
}

func (l *LogNotifier) Permission() Permission { return PermissionGranted }

func (l *LogNotifier) RequestPermission(context.Context) (Permission, error) {
	return PermissionGranted, nil
}

func (l *LogNotifier) Notify(_ context.Context, r Reminder) error {
	l.log.Info("Reminder due",
		logger.F("id", r.NoteID),
		logger.F("title", r.Title),
		logger.F("body", r.Body))
	return nil
}
