package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shoplift/autopilot/internal/config"
	"github.com/shoplift/autopilot/internal/logger"
	"github.com/shoplift/autopilot/internal/service"
)

// Scheduler registers the periodic operations jobs: order sync and the
// sales-analysis loop.
type Scheduler struct {
	cron      *cron.Cron
	orders    *service.OrderManager
	analytics *service.AnalyticsService
	cfg       *config.SchedulerConfig
	logger    *logger.Logger
}

// New creates a scheduler with the given services and intervals.
func New(orders *service.OrderManager, analytics *service.AnalyticsService, cfg *config.SchedulerConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		orders:    orders,
		analytics: analytics,
		cfg:       cfg,
		logger:    log,
	}
}

// Register adds the periodic jobs to the cron runner.
func (s *Scheduler) Register() error {
	syncWindow := time.Duration(s.cfg.OrderSyncMinutes) * time.Minute
	if _, err := s.cron.AddFunc(every(s.cfg.OrderSyncMinutes), func() {
		s.runOrderSync(syncWindow)
	}); err != nil {
		return fmt.Errorf("register order sync job: %w", err)
	}

	analysisWindow := time.Duration(s.cfg.SalesAnalysisMinutes) * time.Minute
	if _, err := s.cron.AddFunc(every(s.cfg.SalesAnalysisMinutes), func() {
		s.runSalesAnalysis(analysisWindow)
	}); err != nil {
		return fmt.Errorf("register sales analysis job: %w", err)
	}

	return nil
}

// Start launches the cron runner. Register must have been called.
func (s *Scheduler) Start() {
	s.logger.WithFields(logger.Fields{
		"order_sync_minutes":     s.cfg.OrderSyncMinutes,
		"sales_analysis_minutes": s.cfg.SalesAnalysisMinutes,
	}).Info("Starting scheduler")
	s.cron.Start()
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOrderSync(window time.Duration) {
	ctx := logger.WithField(context.Background(), logger.FieldComponent, "scheduler")
	res, err := s.orders.SyncRecentOrders(ctx, window)
	if err != nil {
		s.logger.WithError(err).Error("Order sync failed")
		return
	}
	s.logger.WithField("success", res.Success).Info("Order sync completed")
}

func (s *Scheduler) runSalesAnalysis(window time.Duration) {
	ctx := logger.WithField(context.Background(), logger.FieldComponent, "scheduler")
	res, err := s.orders.SyncRecentOrders(ctx, window)
	if err != nil {
		s.logger.WithError(err).Error("Sales analysis order fetch failed")
		return
	}
	report := s.analytics.AnalyzeSales(res)
	s.logger.WithFields(logger.Fields{
		"order_count":  report.OrderCount,
		"gross_amount": report.GrossAmount,
		"decision":     report.Decision,
	}).Info("Sales analysis completed")
}

func every(minutes int) string {
	if minutes <= 0 {
		minutes = 1
	}
	return fmt.Sprintf("@every %dm", minutes)
}
