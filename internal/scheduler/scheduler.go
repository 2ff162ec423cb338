// Package scheduler wires up the cron trigger that periodically kicks off
// a scan, plus the delayed one-shot run at process start.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron. The scan callback owns its own
// concurrency guard; an overlapping tick is the callback's to drop.
type Scheduler struct {
	cron   *cron.Cron
	scan   func(context.Context)
	spec   string
	warmup time.Duration
}

// New creates a Scheduler firing every interval, with one extra run
// scheduled warmup after Start.
func New(interval, warmup time.Duration, scan func(context.Context)) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		scan:   scan,
		spec:   fmt.Sprintf("@every %s", interval),
		warmup: warmup,
	}
}

// Start registers the job and starts the ticker. The startup run waits
// out the warmup delay first so the process finishes wiring before the
// browser launches.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.scan(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started with spec %s", s.spec)

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(s.warmup):
			s.scan(ctx)
		}
	}()

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}
