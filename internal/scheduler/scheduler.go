// Package scheduler runs provider syncs on their cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/providers"
	"github.com/robfig/cron/v3"
)

// Scheduler owns one cron entry per provider. A tick that fires while the
// previous run of the same provider is still going is skipped.
type Scheduler struct {
	cron   *cron.Cron
	sync   portssvc.RateSyncSvc
	logger *slog.Logger
	ctx    context.Context
}

// New creates an empty scheduler.
func New(sync portssvc.RateSyncSvc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "scheduler"))
	cronLogger := cronLogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		sync:   sync,
		logger: logger,
		ctx:    context.Background(),
	}
}

// Add registers p on its schedule. Must be called before Run.
func (s *Scheduler) Add(p providers.Scheduled) error {
	if _, err := s.cron.AddJob(p.Schedule, s.job(p)); err != nil {
		return fmt.Errorf("%w: schedule %q for provider %s: %w", apperrors.ErrConfiguration, p.Schedule, p.Provider.Name(), err)
	}
	s.logger.Info("Provider scheduled", slog.String("provider", p.Provider.Name()), slog.String("schedule", p.Schedule))
	return nil
}

// Run starts the cron loop and blocks until ctx is cancelled, then waits for
// running syncs to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = ctx
	s.cron.Start()
	<-ctx.Done()
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

func (s *Scheduler) job(p providers.Scheduled) cron.Job {
	return cron.FuncJob(func() {
		name := p.Provider.Name()
		if _, err := s.sync.SyncProvider(s.ctx, p.Provider); err != nil {
			s.logger.Error("Scheduled sync failed", slog.String("provider", name), slog.String("error", err.Error()))
		}
	})
}

// cronLogAdapter sends robfig/cron's logr-style calls to slog. Skipped ticks
// are reported at warn level.
type cronLogAdapter struct {
	logger *slog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	if strings.HasPrefix(msg, "skip") {
		a.logger.Warn("Skipping tick, previous sync still running", keysAndValues...)
		return
	}
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
