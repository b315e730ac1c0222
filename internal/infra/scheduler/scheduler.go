package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Schedule decides when the next poll cycle starts. Unlike cron.Cron it never
// fires on its own: the caller finishes a cycle, then calls Wait, so cycles
// can't overlap.
type Schedule struct {
	spec   string
	sched  cron.Schedule
	now    func() time.Time
	logger *logrus.Entry
}

// New parses spec in standard cron syntax, including descriptors such as
// "@every 10m" or "@hourly".
func New(spec string, logger *logrus.Entry) (*Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid retry schedule %q: %w", spec, err)
	}
	return &Schedule{
		spec:   spec,
		sched:  sched,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Spec returns the schedule as configured.
func (s *Schedule) Spec() string { return s.spec }

// Next returns the first activation strictly after from.
func (s *Schedule) Next(from time.Time) time.Time {
	next, _ := s.nextDelay(from)
	return next
}

// Wait blocks until the next activation or until ctx is done.
func (s *Schedule) Wait(ctx context.Context) error {
	next, d := s.nextDelay(s.now())
	s.logger.WithFields(logrus.Fields{
		"next_run": next.Format(time.RFC3339),
		"sleep":    d.String(),
	}).Debug("Waiting for next cycle")

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// nextDelay returns the next activation and how long to sleep until it.
// cron's "@every" schedule rounds down to whole seconds, which would shorten
// the pause; an interval schedule always sleeps its full delay.
func (s *Schedule) nextDelay(now time.Time) (time.Time, time.Duration) {
	if every, ok := s.sched.(cron.ConstantDelaySchedule); ok {
		return now.Add(every.Delay), every.Delay
	}
	next := s.sched.Next(now)
	return next, next.Sub(now)
}
