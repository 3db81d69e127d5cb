package tui

import (
	"context"
	"errors"

	"github.com/existflow/sticky/internal/reminder"
)

var errAlertQueueFull = errors.New("alert queue full")

// AlertNotifier hands reminders to the board, which shows them as an
// in-app modal. It never blocks the monitor.
type AlertNotifier struct {
	ch chan reminder.Reminder
}

// NewAlertNotifier creates a notifier queueing up to size alerts
func NewAlertNotifier(size int) *AlertNotifier {
	if size <= 0 {
		size = 16
	}
	return &AlertNotifier{ch: make(chan reminder.Reminder, size)}
}

// C is the channel the board reads alerts from
func (a *AlertNotifier) C() <-chan reminder.Reminder {
	return a.ch
}

func (a *AlertNotifier) Permission() reminder.Permission { return reminder.PermissionGranted }

func (a *AlertNotifier) RequestPermission(context.Context) (reminder.Permission, error) {
	return reminder.PermissionGranted, nil
}

func (a *AlertNotifier) Notify(ctx context.Context, r reminder.Reminder) error {
	select {
	case a.ch <- r:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errAlertQueueFull
	}
}
