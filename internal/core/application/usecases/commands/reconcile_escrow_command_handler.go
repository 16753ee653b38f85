package commands

import (
	"context"
	"log/slog"
)

// ReconcileEscrowCommandHandler retries escrow entries whose settlement
// failed. Each failed entry carries the operation and amount of the original
// attempt; the retry re-applies exactly that, so a half-finished partial
// capture completes with the intended amount.
//
// Entries that fail again stay in Failed and get picked up by the next run;
// the settler reports each failure for the operator.
type ReconcileEscrowCommandHandler struct {
	uowFactory UoWFactory
	settler    EscrowSettler
	logger     *slog.Logger
}

// NewReconcileEscrowCommandHandler creates a handler for the escrow
// reconciliation sweep.
func NewReconcileEscrowCommandHandler(
	uowFactory UoWFactory,
	settler EscrowSettler,
	logger *slog.Logger,
) ReconcileEscrowCommandHandler {
	return ReconcileEscrowCommandHandler{
		uowFactory: uowFactory,
		settler:    settler,
		logger:     logger,
	}
}

// Handle processes the reconciliation command. Entries settle independently;
// one entry failing again never blocks the rest.
func (h ReconcileEscrowCommandHandler) Handle(ctx context.Context, cmd ReconcileEscrowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	escrowRepo := uow.EscrowRepository()

	failed, err := escrowRepo.GetAllFailed(ctx)
	if err != nil {
		return err
	}

	settled := 0
	for _, entry := range failed {
		if err = h.settler.settle(
			ctx, escrowRepo, entry, entry.FailedOperation(), entry.SettlementAmount(),
		); err != nil {
			// Already logged by the settler; the entry stays queued.
			continue
		}
		settled++
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(failed) > 0 {
		h.logger.InfoContext(ctx, "escrow reconciliation sweep finished",
			"failed_entries", len(failed),
			"settled", settled)
	}

	return nil
}
