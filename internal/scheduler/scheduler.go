package scheduler

import (
	"fmt"
	"time"

	"github.com/existflow/sticky/internal/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring jobs on a cron runner. A job that is still
// running when its next tick arrives is skipped for that tick.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler in loc; nil means local time
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{log: logger.WithFields(logger.F("component", "scheduler"))}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Every registers job to run every interval. Sub-second intervals are
// rounded up to one second.
func (s *Scheduler) Every(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	if interval < time.Second {
		interval = time.Second
	}
	return s.cron.AddFunc("@every "+interval.Round(time.Second).String(), job)
}

// Remove unregisters a job
func (s *Scheduler) Remove(id cron.EntryID) {
	s.cron.Remove(id)
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// cronLogger routes cron's logging through the app logger
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug("cron: "+msg, pairs(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(pairs(keysAndValues), logger.F("error", err))
	c.log.Error("cron: "+msg, fields...)
}

func pairs(kv []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, logger.F(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return fields
}
