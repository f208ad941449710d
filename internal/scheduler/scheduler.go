package scheduler

import (
	"context"
	"fmt"

	"go-spear/internal/config"
	"go-spear/internal/features/billing"
	"go-spear/internal/features/device"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the recurring background jobs: the device fleet poll and
// the daily billing scan. Schedules come from config.
type Scheduler struct {
	cron    *cron.Cron
	cfg     *config.Config
	devices device.DeviceService
	billing billing.BillingService
	logger  *zap.Logger
}

func NewScheduler(cfg *config.Config, devices device.DeviceService, billingService billing.BillingService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cfg:     cfg,
		devices: devices,
		billing: billingService,
		logger:  logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.TVClientID != "" {
		if _, err := s.cron.AddFunc(s.cfg.DevicePollCron, s.runDevicePoll); err != nil {
			return fmt.Errorf("invalid device poll schedule %q: %w", s.cfg.DevicePollCron, err)
		}
		s.logger.Info("device poll scheduled", zap.String("cron", s.cfg.DevicePollCron))
	} else {
		s.logger.Info("device poll disabled, TV_CLIENT_ID not set")
	}

	if s.cfg.StripeKey != "" {
		if _, err := s.cron.AddFunc(s.cfg.BillingScanCron, s.runBillingScan); err != nil {
			return fmt.Errorf("invalid billing scan schedule %q: %w", s.cfg.BillingScanCron, err)
		}
		s.logger.Info("billing scan scheduled", zap.String("cron", s.cfg.BillingScanCron))
	} else {
		s.logger.Info("billing scan disabled, STRIPE_KEY not set")
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	return nil
}

func (s *Scheduler) runDevicePoll() {
	if err := s.devices.Sync(context.Background()); err != nil {
		s.logger.Warn("scheduled device poll failed", zap.Error(err))
	}
}

func (s *Scheduler) runBillingScan() {
	if err := s.billing.ScanSubscriptions(context.Background()); err != nil {
		s.logger.Warn("scheduled billing scan failed", zap.Error(err))
	}
}
