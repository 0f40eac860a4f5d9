// Package scheduler runs periodic housekeeping: expiring abandoned payments
// and switching off plan instances past their end date.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"playpark/internal/config"
	"playpark/internal/logger"
	"playpark/internal/metrics"
	"playpark/internal/services/payment"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const jobHousekeeping = "housekeeping"

// Expirer is satisfied by the payment service.
type Expirer interface {
	ExpireStale(ctx context.Context, now time.Time) (*payment.ExpireResult, error)
}

type Scheduler struct {
	cron     gocron.Scheduler
	expirer  Expirer
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func New(cfg config.SchedulerConfig, expirer Expirer, log *zap.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		cron:     cron,
		expirer:  expirer,
		interval: interval,
		log:      logger.OrNop(log),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Start registers the jobs and starts the scheduler. Jobs run with ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.RunHousekeeping(ctx) }),
		gocron.WithName(jobHousekeeping),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to register %s job: %w", jobHousekeeping, err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// RunHousekeeping performs one housekeeping pass.
func (s *Scheduler) RunHousekeeping(ctx context.Context) {
	res, err := s.expirer.ExpireStale(ctx, s.now())
	if err != nil {
		metrics.JobRuns.WithLabelValues(jobHousekeeping, "error").Inc()
		s.log.Error("housekeeping failed", zap.Error(err))
		return
	}
	metrics.JobRuns.WithLabelValues(jobHousekeeping, "success").Inc()

	if res.ExpiredPayments > 0 || res.DeactivatedInstances > 0 {
		s.log.Info("housekeeping done",
			zap.Int64("expired_payments", res.ExpiredPayments),
			zap.Int64("deactivated_instances", res.DeactivatedInstances),
		)
	}
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
