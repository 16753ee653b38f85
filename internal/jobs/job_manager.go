package jobs

import (
	"fmt"
	"log/slog"

	"freightline/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	biddingWindowJob        *BiddingWindowJob
	escrowReconciliationJob *EscrowReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers and cron schedules as dependencies.
func NewJobManager(
	expireBiddingHandler commands.ExpireBiddingWindowsCommandHandler,
	reconcileEscrowHandler commands.ReconcileEscrowCommandHandler,
	biddingSchedule string,
	reconciliationSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		biddingWindowJob:        NewBiddingWindowJob(expireBiddingHandler, biddingSchedule, logger),
		escrowReconciliationJob: NewEscrowReconciliationJob(reconcileEscrowHandler, reconciliationSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.biddingWindowJob.Start(); err != nil {
		return fmt.Errorf("failed to start bidding window job: %w", err)
	}

	if err := jm.escrowReconciliationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.biddingWindowJob.Stop()
		return fmt.Errorf("failed to start escrow reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.escrowReconciliationJob.Stop()
	jm.biddingWindowJob.Stop()
}
