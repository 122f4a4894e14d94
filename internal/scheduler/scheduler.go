// Package scheduler drives the daily wait-check loop: sleep until the
// configured time of day, run one fetch-parse-evaluate-notify cycle,
// repeat until the context is cancelled.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/aurora-watch/internal/config"
	"github.com/couchcryptid/aurora-watch/internal/domain"
	"github.com/couchcryptid/aurora-watch/internal/observability"
)

// ForecastFetcher retrieves the raw forecast text for one cycle.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context) (string, error)
}

// Notifier delivers the result of one completed check.
type Notifier interface {
	Notify(ctx context.Context, dates []string)
}

// Scheduler alternates between waiting for the next daily check time and
// running the check pipeline. Each cycle is fully synchronous; cycles
// never overlap.
type Scheduler struct {
	fetcher     ForecastFetcher
	notifier    Notifier
	threshold   float64
	checkHour   int
	checkMinute int
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Scheduler from the loaded configuration.
func New(fetcher ForecastFetcher, notifier Notifier, cfg *config.Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		fetcher:     fetcher,
		notifier:    notifier,
		threshold:   cfg.KpThreshold,
		checkHour:   cfg.CheckHour,
		checkMinute: cfg.CheckMinute,
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
	}
}

// NextCheck returns the next occurrence of the configured daily check
// time, in now's location. A time of day already past targets tomorrow.
func (s *Scheduler) NextCheck(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.checkHour, s.checkMinute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// CheckReadiness returns nil once the scheduler has entered its waiting
// state. A once-a-day loop may legitimately not have checked anything
// yet, so readiness means the schedule is armed, not that a cycle ran.
func (s *Scheduler) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("scheduler has not started waiting yet")
	}
	return nil
}

// Run executes the daily loop until the context is cancelled. It has no
// other exit: the process is expected to be stopped externally between
// cycles.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"check_time", fmt.Sprintf("%02d:%02d", s.checkHour, s.checkMinute),
		"kp_threshold", s.threshold,
	)
	s.metrics.SchedulerRunning.Set(1)
	defer s.metrics.SchedulerRunning.Set(0)

	for {
		now := s.clock.Now()
		wait := s.NextCheck(now).Sub(now)
		s.logger.Info("waiting for next check", "state", "waiting", "wait", wait)
		s.ready.Store(true)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		case <-s.clock.After(wait):
		}

		s.runCycle(ctx)
	}
}

// runCycle performs one fetch-parse-evaluate-notify pass. Every failure
// is contained here; the loop always proceeds to the next wait.
func (s *Scheduler) runCycle(ctx context.Context) {
	start := s.clock.Now()
	s.metrics.CyclesTotal.Inc()

	logger := s.logger.With("cycle_id", uuid.NewString())
	logger.Info("checking forecast", "state", "checking")

	text, err := s.fetcher.FetchForecast(ctx)
	s.metrics.FetchDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchFailures.Inc()
		logger.Error("forecast fetch failed, skipping check", "error", err)
		return
	}

	series := domain.ParseForecast(text)
	favorable := domain.FavorableDates(series, s.threshold)

	s.metrics.ForecastDates.Set(float64(series.Len()))
	s.metrics.FavorableDates.Set(float64(len(favorable)))
	s.metrics.MaxKpForecast.Set(series.MaxValue())

	logger.Info("forecast evaluated",
		"dates", series.Len(),
		"favorable", len(favorable),
		"max_kp", series.MaxValue(),
	)

	s.notifier.Notify(ctx, favorable)
	s.metrics.CycleDuration.Observe(s.clock.Since(start).Seconds())
}
