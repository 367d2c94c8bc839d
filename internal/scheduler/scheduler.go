package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/config"
	"github.com/hamrofarm/kukhura/internal/service/farm"
	"github.com/hamrofarm/kukhura/internal/service/sync"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	farmSvc *farm.Service
	syncSvc *sync.Service
	cfg     config.Config
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, farmSvc *farm.Service, syncSvc *sync.Service, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, err
	}
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:    c,
		farmSvc: farmSvc,
		syncSvc: syncSvc,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Start registers the scheduled jobs and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	// Nightly sweep of records whose flock no longer exists. Deletes do
	// cascade inline, but a restored snapshot may carry orphans.
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.SweepSchedule, s.sweepOrphans); err != nil {
		s.logger.Error("failed to schedule orphan sweep", zap.Error(err))
	}

	if s.cfg.Scheduler.BackupSchedule != "" && s.syncSvc.Enabled() {
		if _, err := s.cron.AddFunc(s.cfg.Scheduler.BackupSchedule, s.uploadBackup); err != nil {
			s.logger.Error("failed to schedule automatic backup", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pruned, err := s.farmSvc.PruneOrphans(ctx)
	if err != nil {
		s.logger.Error("orphan sweep failed", zap.Error(err))
		return
	}
	if pruned > 0 {
		s.logger.Info("orphan sweep removed records", zap.Int64("pruned", pruned))
	}
}

func (s *Scheduler) uploadBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.syncSvc.Upload(ctx); err != nil {
		s.logger.Error("automatic backup failed", zap.Error(err))
		return
	}
	s.logger.Info("automatic backup uploaded")
}
