package reminder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/notes"
	"github.com/existflow/sticky/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

type recorder struct {
	mu         sync.Mutex
	permission Permission
	grantTo    Permission
	asked      int
	sent       []Reminder
	err        error
}

func (r *recorder) Permission() Permission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.permission
}

func (r *recorder) RequestPermission(context.Context) (Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.asked++
	r.permission = r.grantTo
	return r.permission, nil
}

func (r *recorder) Notify(_ context.Context, rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, rem)
	return nil
}

func (r *recorder) reminders() []Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Reminder(nil), r.sent...)
}

func at(d time.Duration) *time.Time {
	t := epoch.Add(d)
	return &t
}

func newStore(t *testing.T) *notes.Store {
	t.Helper()
	return notes.New(storage.NewAdapter(storage.NewMemorySlots()),
		notes.WithClock(func() time.Time { return epoch }))
}

func clockAt(d time.Duration) Option {
	return WithClock(func() time.Time { return epoch.Add(d) })
}

func TestScanFiresDueNoteOnce(t *testing.T) {
	store := newStore(t)
	n, err := store.Create(model.FormData{Title: "Pay rent", DueAt: at(0)})
	require.NoError(t, err)

	rec := &recorder{permission: PermissionGranted}
	m := NewMonitor(store, rec, clockAt(5*time.Second))

	res := m.Scan(context.Background())
	assert.Equal(t, Result{Due: 1, Dispatched: 1, Acknowledged: 1}, res)

	sent := rec.reminders()
	require.Len(t, sent, 1)
	assert.Equal(t, Reminder{NoteID: n.ID, Title: "Pay rent", Body: "Reminder: note is due"}, sent[0])

	got, ok := store.Get(n.ID)
	require.True(t, ok)
	assert.True(t, got.Notified)
	assert.Equal(t, StateFired, StateOf(got))

	res = m.Scan(context.Background())
	assert.Equal(t, Result{}, res)
	assert.Len(t, rec.reminders(), 1)
}

func TestScanSkipsFutureAndUndated(t *testing.T) {
	store := newStore(t)
	future, err := store.Create(model.FormData{Title: "later", DueAt: at(time.Hour)})
	require.NoError(t, err)
	plain, err := store.Create(model.FormData{Title: "no date"})
	require.NoError(t, err)

	rec := &recorder{permission: PermissionGranted}
	m := NewMonitor(store, rec, clockAt(time.Minute))

	assert.Equal(t, Result{}, m.Scan(context.Background()))
	assert.Empty(t, rec.reminders())

	got, _ := store.Get(future.ID)
	assert.Equal(t, StatePending, StateOf(got))
	got, _ = store.Get(plain.ID)
	assert.Equal(t, StateNone, StateOf(got))
}

func TestScanWithoutPermissionStillAcknowledges(t *testing.T) {
	store := newStore(t)
	n, err := store.Create(model.FormData{Title: "quiet", DueAt: at(-time.Minute)})
	require.NoError(t, err)

	rec := &recorder{permission: PermissionDenied}
	m := NewMonitor(store, rec, clockAt(0))

	res := m.Scan(context.Background())
	assert.Equal(t, Result{Due: 1, Dispatched: 0, Acknowledged: 1}, res)
	assert.Empty(t, rec.reminders())

	got, _ := store.Get(n.ID)
	assert.True(t, got.Notified)
}

func TestScanSwallowsDispatchErrors(t *testing.T) {
	store := newStore(t)
	_, err := store.Create(model.FormData{Title: "a", DueAt: at(0)})
	require.NoError(t, err)
	_, err = store.Create(model.FormData{Title: "b", DueAt: at(0)})
	require.NoError(t, err)

	rec := &recorder{permission: PermissionGranted, err: errors.New("display gone")}
	m := NewMonitor(store, rec, clockAt(0))

	res := m.Scan(context.Background())
	assert.Equal(t, Result{Due: 2, Dispatched: 0, Acknowledged: 2}, res)
	assert.Empty(t, store.Due(epoch))
}

func TestResetNotifiedFiresAgain(t *testing.T) {
	store := newStore(t)
	n, err := store.Create(model.FormData{Title: "again", DueAt: at(0)})
	require.NoError(t, err)

	rec := &recorder{permission: PermissionGranted}
	m := NewMonitor(store, rec, clockAt(time.Second))

	m.Scan(context.Background())
	require.True(t, store.SetNotified(n.ID, false))
	m.Scan(context.Background())

	assert.Len(t, rec.reminders(), 2)
}

func TestScanDoesNotClobberConcurrentEdit(t *testing.T) {
	store := newStore(t)
	n, err := store.Create(model.FormData{Title: "moved", DueAt: at(0)})
	require.NoError(t, err)

	// The note is rescheduled after the scan read it but before it was
	// acknowledged.
	src := &editingSource{Store: store, edit: func() {
		_, _, err := store.Update(n.ID, model.FormData{Title: "moved", DueAt: at(time.Hour)})
		require.NoError(t, err)
	}}
	m := NewMonitor(src, &recorder{permission: PermissionGranted}, clockAt(time.Second))

	res := m.Scan(context.Background())
	assert.Equal(t, 1, res.Due)
	assert.Equal(t, 0, res.Acknowledged)

	got, _ := store.Get(n.ID)
	assert.False(t, got.Notified)
	assert.True(t, got.DueAt.Equal(epoch.Add(time.Hour)))
}

type editingSource struct {
	*notes.Store
	edit func()
}

func (e *editingSource) Due(now time.Time) []model.Note {
	due := e.Store.Due(now)
	e.edit()
	return due
}

func TestStartRequestsPermissionAndScansImmediately(t *testing.T) {
	store := newStore(t)
	n, err := store.Create(model.FormData{Title: "now", DueAt: at(0)})
	require.NoError(t, err)

	rec := &recorder{grantTo: PermissionGranted}
	m := NewMonitor(store, rec, clockAt(0), WithInterval(time.Hour))

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	assert.Equal(t, 1, rec.asked)
	assert.Len(t, rec.reminders(), 1)
	got, _ := store.Get(n.ID)
	assert.True(t, got.Notified)

	assert.Error(t, m.Start(context.Background()))
}

func TestStartKeepsScanning(t *testing.T) {
	store := newStore(t)
	rec := &recorder{permission: PermissionGranted}
	m := NewMonitor(store, rec, clockAt(0), WithInterval(time.Second))

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	_, err := store.Create(model.FormData{Title: "late arrival", DueAt: at(0)})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(rec.reminders()) == 1 }, 5*time.Second, 50*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	m := NewMonitor(newStore(t), &recorder{permission: PermissionGranted})
	m.Stop()
	require.NoError(t, m.Start(context.Background()))
	m.Stop()
	m.Stop()
}

func TestNewReminder(t *testing.T) {
	long := strings.Repeat("ß", 130)

	tests := []struct {
		name string
		note model.Note
		want Reminder
	}{
		{"title and body", model.Note{ID: "1", Title: "Call", Body: "mom"}, Reminder{NoteID: "1", Title: "Call", Body: "mom"}},
		{"empty title", model.Note{ID: "2", Body: "x"}, Reminder{NoteID: "2", Title: "Reminder", Body: "x"}},
		{"empty body", model.Note{ID: "3", Title: "t"}, Reminder{NoteID: "3", Title: "t", Body: "Reminder: note is due"}},
		{"long body", model.Note{ID: "4", Title: "t", Body: long}, Reminder{NoteID: "4", Title: "t", Body: strings.Repeat("ß", 120) + "..."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewReminder(tt.note))
		})
	}
}

func TestTerminalNotifierDeniedWithoutTTY(t *testing.T) {
	var buf bytes.Buffer
	tn := NewTerminalNotifier(&buf)
	assert.Equal(t, PermissionDefault, tn.Permission())

	p, err := tn.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, p)

	assert.Error(t, tn.Notify(context.Background(), Reminder{Title: "x", Body: "y"}))
	assert.Empty(t, buf.String())
}

func TestTerminalNotifierWritesWhenGranted(t *testing.T) {
	var buf bytes.Buffer
	tn := NewTerminalNotifier(&buf)
	tn.permission = PermissionGranted

	require.NoError(t, tn.Notify(context.Background(), Reminder{Title: "Pay rent", Body: "today"}))
	assert.Equal(t, "\a⏰ Pay rent: today\n", buf.String())
}

func TestNotifierFunc(t *testing.T) {
	var got Reminder
	f := NotifierFunc(func(_ context.Context, r Reminder) error { got = r; return nil })
	assert.Equal(t, PermissionGranted, f.Permission())
	require.NoError(t, f.Notify(context.Background(), Reminder{Title: "t"}))
	assert.Equal(t, "t", got.Title)
}
