package jobs

import (
	"fmt"
	"log"

	"HTXErp/internal/logger"
	"HTXErp/internal/planledger"
	"HTXErp/internal/serviceiface"
	"HTXErp/internal/store"
)

// CronService hosts the background schedules: currently the reconciliation
// retry sweep.
type CronService struct {
	config map[string]interface{}
	store  store.Store
	recon  *planledger.Reconciler
}

func NewCronService(cfg map[string]interface{}, st store.Store, recon *planledger.Reconciler) serviceiface.Service {
	return &CronService{
		config: cfg,
		store:  st,
		recon:  recon,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	retryConfig := NewDefaultRetryConfig()
	if s.config != nil {
		if schedule, ok := s.config["retry_schedule"].(string); ok && schedule != "" {
			retryConfig.Schedule = schedule
		}
		if batchSize, ok := s.config["retry_batch_size"].(int); ok && batchSize > 0 {
			retryConfig.BatchSize = batchSize
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			retryConfig.TimeZone = tz
		}
	}

	if err := RunRetryScheduler(retryConfig, s.store, s.recon); err != nil {
		return fmt.Errorf("failed to start recon retry scheduler: %v", err)
	}

	logger.Audit("Cron service started with recon retry sweep")
	return nil
}

func (s *CronService) Stop() error {
	return nil
}
