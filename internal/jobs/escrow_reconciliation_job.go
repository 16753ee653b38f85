package jobs

import (
	"context"
	"log/slog"

	"freightline/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EscrowReconciliationJob retries escrow entries whose settlement against the
// payment gateway previously failed.
type EscrowReconciliationJob struct {
	handler  commands.ReconcileEscrowCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewEscrowReconciliationJob creates the reconciliation sweep running on the
// given cron schedule (with seconds field).
func NewEscrowReconciliationJob(
	handler commands.ReconcileEscrowCommandHandler,
	schedule string,
	logger *slog.Logger,
) *EscrowReconciliationJob {
	return &EscrowReconciliationJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "escrow_reconciliation_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *EscrowReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileEscrowCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Escrow reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Escrow reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *EscrowReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Escrow reconciliation job stopped")
}
