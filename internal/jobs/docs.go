// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. BiddingWindowJob - Declines orders whose bidding window elapsed without an accepted bid
// 2. EscrowReconciliationJob - Retries escrow entries whose gateway settlement failed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers and schedules
//	jobManager := jobs.NewJobManager(expireHandler, reconcileHandler, biddingSchedule, reconciliationSchedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (with seconds) supplied through
// configuration. The bidding sweep typically runs every few seconds; the
// reconciliation sweep every minute.
//
// # Error Handling
//
// Both sweeps skip entries they cannot process and log the failures; a failed
// run never stops the schedule. Failed job starts stop any already running jobs.
package jobs
