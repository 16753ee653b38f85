package commands

import (
	"errors"

	"freightline/internal/pkg/guard"
)

// ReconcileEscrowCommand triggers the sweep over escrow entries whose
// settlement failed, retrying the recorded operation against the gateway.
//
// Example:
//
//	cmd := NewReconcileEscrowCommand()
//	handler := NewReconcileEscrowCommandHandler(uowFactory, settler, logger)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Escrow reconciliation failed: %v", err)
//	}
type ReconcileEscrowCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrReconcileEscrowCommandIsNotConstructed = errors.New(
		"ReconcileEscrowCommand must be created via NewReconcileEscrowCommand constructor",
	)
)

// NewReconcileEscrowCommand creates a command to retry failed escrow settlements.
// This is a parameterless command that processes all failed entries.
func NewReconcileEscrowCommand() ReconcileEscrowCommand {
	command := ReconcileEscrowCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileEscrowCommandIsNotConstructed if validation fails.
func (c *ReconcileEscrowCommand) Validate() error {
	return c.guard.Validate(ErrReconcileEscrowCommandIsNotConstructed)
}
