package background

import (
	"context"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"tienda/internal/config"
	"tienda/internal/jobs"
)

// Scheduler owns the gocron instance and the registered background jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.StockAlertService
	cfg       config.JobsConfig
	logger    *zap.Logger
}

// NewScheduler creates the scheduler and registers all jobs.
func NewScheduler(alertSvc *jobs.StockAlertService, cfg config.JobsConfig, logger *zap.Logger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
		cfg:       cfg,
		logger:    logger,
	}
	if err := s.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.cfg.LowStockInterval),
		gocron.NewTask(s.alertSvc.RunScheduledCheck, context.Background()),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	return nil
}

// Start starts the background jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting background job scheduler",
		zap.Duration("low_stock_interval", s.cfg.LowStockInterval))
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping background job scheduler")
	return s.scheduler.Shutdown()
}
