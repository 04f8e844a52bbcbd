package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/config"
	"github.com/felano-technologies/poultrycare/internal/service/statistics"
)

// Scheduler manages the nightly farm statistics snapshot job.
type Scheduler struct {
	cron     *cron.Cron
	statsSvc *statistics.Service
	cfg      config.SnapshotConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured timezone; an unknown timezone falls back to local time.
func NewScheduler(cfg config.SnapshotConfig, statsSvc *statistics.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, scheduler falls back to local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		statsSvc: statsSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.writeSnapshots); err != nil {
		s.logger.Error("failed to schedule snapshot job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) writeSnapshots() {
	s.logger.Info("writing nightly farm snapshots")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.statsSvc.SnapshotAll(ctx); err != nil {
		s.logger.Error("failed to write farm snapshots", zap.Error(err))
	}
}
