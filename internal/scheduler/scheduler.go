package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/services/refresher"
	"github.com/robfig/cron/v3"
)

// Reporter receives the summary of every completed scheduled run.
type Reporter interface {
	NotifyRunSummary(ctx context.Context, summary *models.RunSummary) error
}

// Scheduler triggers refresh runs on a cron schedule evaluated in a fixed timezone.
type Scheduler struct {
	log      *slog.Logger
	job      refresher.Interface
	reporter Reporter
	schedule cron.Schedule
	loc      *time.Location
}

// New creates a Scheduler for a standard 5-field cron spec, e.g. "0 0 * * *" for daily at midnight.
// reporter may be nil.
func New(log *slog.Logger, job refresher.Interface, reporter Reporter, spec string, loc *time.Location) (*Scheduler, error) {
	const opn = "scheduler.New"

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", opn, spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{log: log, job: job, reporter: reporter, schedule: schedule, loc: loc}, nil
}

// Next returns the first fire time strictly after the given instant, in the scheduler's timezone.
func (s *Scheduler) Next(after time.Time) time.Time {
	return s.schedule.Next(after.In(s.loc))
}

// Start runs the schedule until ctx is canceled, then waits for an in-flight run to return.
func (s *Scheduler) Start(ctx context.Context) {
	c := cron.New(cron.WithLocation(s.loc))
	c.Schedule(s.schedule, cron.FuncJob(func() { s.Trigger(ctx) }))

	s.log.InfoContext(ctx, "Scheduler is starting...", "timezone", s.loc.String(), "next_run", s.Next(time.Now()))
	c.Start()

	<-ctx.Done()

	s.log.Info("Scheduler is stopping...")
	<-c.Stop().Done()
}

// Trigger performs one refresh run and hands the summary to the reporter.
func (s *Scheduler) Trigger(ctx context.Context) {
	const opn = "scheduler.Trigger"
	log := s.log.With("op", opn)

	summary, err := s.job.Run(ctx)
	switch {
	case errors.Is(err, refresher.ErrRunInProgress):
		log.InfoContext(ctx, "Previous refresh run still active, trigger skipped")
		return
	case err != nil:
		log.ErrorContext(ctx, "Refresh run failed", "error", err)
		return
	}

	if s.reporter == nil {
		return
	}
	if err = s.reporter.NotifyRunSummary(ctx, summary); err != nil {
		log.WarnContext(ctx, "Failed to report run summary", "error", err)
	}
}
