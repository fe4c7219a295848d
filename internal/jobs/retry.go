package jobs

import (
	"context"
	"fmt"
	"time"

	"HTXErp/internal/config"
	"HTXErp/internal/logger"
	"HTXErp/internal/planledger"
	"HTXErp/internal/store"

	"github.com/robfig/cron/v3"
)

// RetryConfig drives the reconciliation retry sweep.
type RetryConfig struct {
	Schedule  string
	TimeZone  string
	BatchSize int
}

func NewDefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Schedule:  config.DefaultRetrySchedule,
		TimeZone:  config.DefaultTimeZone,
		BatchSize: config.RetryBatchSize,
	}
}

// RunRetryScheduler schedules the recovery sweep over recon_retry. A scope
// lands in that table when a document write committed but its recompute
// failed; the sweep re-runs the recompute until the scope clears.
func RunRetryScheduler(cfg *RetryConfig, st store.Store, recon *planledger.Reconciler) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRetrySchedule
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = config.RetryBatchSize
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		if err := ProcessReconRetries(st, recon, cfg.BatchSize); err != nil {
			logger.Audit(fmt.Sprintf("Recon retry sweep failed: %v", err))
		}
	})
	if err != nil {
		return fmt.Errorf("unable to schedule recon retry sweep: %v", err)
	}

	c.Start()
	logger.Audit("Recon retry scheduler started")

	return nil
}

// ProcessReconRetries re-runs reconciliation for every queued scope, clearing
// entries that succeed and refreshing the error on those that fail again.
func ProcessReconRetries(st store.Store, recon *planledger.Reconciler, batchSize int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pending, err := st.Get(ctx, "recon_retry", nil)
	if err != nil {
		return fmt.Errorf("load recon retry queue: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}
	if batchSize > 0 && len(pending) > batchSize {
		pending = pending[:batchSize]
	}

	cleared := 0
	for _, row := range pending {
		project := store.String(row, "project_code")
		subject := store.String(row, "cost_item")

		if err := recon.Reconcile(ctx, project, subject); err != nil {
			upErr := st.Upsert(ctx, "recon_retry", []store.Row{{
				"project_code": project,
				"cost_item":    subject,
				"last_error":   err.Error(),
				"failed_at":    time.Now().Format(time.RFC3339),
			}}, []string{"project_code", "cost_item"})
			if upErr != nil {
				logger.Audit(fmt.Sprintf("Recon retry bookkeeping failed for %s/%s: %v", project, subject, upErr))
			}
			continue
		}

		if err := st.Delete(ctx, "recon_retry", store.Filter{
			"project_code": project,
			"cost_item":    subject,
		}); err != nil {
			logger.Audit(fmt.Sprintf("Recon retry cleanup failed for %s/%s: %v", project, subject, err))
			continue
		}
		cleared++
	}

	if cleared > 0 {
		logger.Audit(fmt.Sprintf("Recon retry sweep cleared %d of %d scopes", cleared, len(pending)))
	}
	return nil
}
