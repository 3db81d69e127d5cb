// Package reminder scans notes for due reminders and alerts the user once
// per due date.
package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/scheduler"
	"github.com/robfig/cron/v3"
)

// DefaultInterval is the time between scans
const DefaultInterval = 10 * time.Second

// Source is the part of the note store the monitor needs
type Source interface {
	Due(now time.Time) []model.Note
	Acknowledge(id string, dueAt time.Time) bool
}

// State of a note's reminder
type State int

const (
	StateNone    State = iota // no due date
	StatePending              // due date set, not processed yet
	StateFired                // processed; waits for a manual reset
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFired:
		return "fired"
	default:
		return "none"
	}
}

// StateOf returns the reminder state of n
func StateOf(n model.Note) State {
	switch {
	case n.DueAt == nil:
		return StateNone
	case n.Notified:
		return StateFired
	default:
		return StatePending
	}
}

// Result summarizes one scan
type Result struct {
	Due          int // notes found due and unprocessed
	Dispatched   int // alerts handed to the notifier successfully
	Acknowledged int // notes flipped to notified
}

// Monitor periodically scans a Source for due notes
type Monitor struct {
	source   Source
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	log      *logger.Logger

	mu      sync.Mutex
	sched   *scheduler.Scheduler
	entry   cron.EntryID
	running bool
}

// Option configures a Monitor
type Option func(*Monitor)

// WithInterval sets the scan interval
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithScheduler runs the recurring scan on an existing scheduler
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(m *Monitor) { m.sched = s }
}

// NewMonitor creates a monitor over source that alerts through notifier
func NewMonitor(source Source, notifier Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		source:   source,
		notifier: notifier,
		interval: DefaultInterval,
		now:      time.Now,
		log:      logger.WithFields(logger.F("component", "reminder")),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Interval returns the scan interval
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Scan alerts for every due, unprocessed note and marks it notified. A note
// is marked even when the alert could not be delivered, so it never fires
// twice for the same due date.
func (m *Monitor) Scan(ctx context.Context) Result {
	now := m.now()
	due := m.source.Due(now)
	res := Result{Due: len(due)}
	if len(due) == 0 {
		return res
	}

	granted := m.notifier.Permission() == PermissionGranted
	for _, n := range due {
		if err := ctx.Err(); err != nil {
			m.log.Debug("Scan cancelled", logger.F("error", err))
			break
		}
		if n.DueAt == nil {
			continue
		}

		if granted {
			if err := m.notifier.Notify(ctx, NewReminder(n)); err != nil {
				m.log.Warn("Reminder dispatch failed", logger.F("id", n.ID), logger.F("error", err))
			} else {
				res.Dispatched++
			}
		} else {
			m.log.Debug("Reminder not shown, permission missing", logger.F("id", n.ID))
		}

		if m.source.Acknowledge(n.ID, *n.DueAt) {
			res.Acknowledged++
		}
	}

	m.log.Info("Reminder scan",
		logger.F("due", res.Due),
		logger.F("dispatched", res.Dispatched),
		logger.F("acknowledged", res.Acknowledged))
	return res
}

// Start asks for notification permission if it was never asked, scans
// once right away, then keeps scanning every interval until Stop.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New("reminder monitor already running")
	}

	if m.notifier.Permission() == PermissionDefault {
		p, err := m.notifier.RequestPermission(ctx)
		if err != nil {
			m.log.Warn("Permission request failed", logger.F("error", err))
		} else {
			m.log.Info("Notification permission", logger.F("state", p.String()))
		}
	}

	m.Scan(ctx)

	if m.sched == nil {
		m.sched = scheduler.New(nil)
	}
	entry, err := m.sched.Every(m.interval, func() { m.Scan(ctx) })
	if err != nil {
		return err
	}
	m.entry = entry
	m.sched.Start()
	m.running = true

	m.log.Info("Reminder monitor started", logger.F("interval", m.interval.String()))
	return nil
}

// Stop cancels the recurring scan and waits for a running one to finish
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.sched.Remove(m.entry)
	m.sched.Stop()
	m.running = false
	m.log.Info("Reminder monitor stopped")
}
