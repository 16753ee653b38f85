package commands

import (
	"errors"

	"freightline/internal/pkg/guard"
)

// ExpireBiddingWindowsCommand triggers the sweep over orders whose bidding
// window has passed without an accepted bid. Expired orders are declined and
// their open bids closed.
//
// Example:
//
//	cmd := NewExpireBiddingWindowsCommand()
//	handler := NewExpireBiddingWindowsCommandHandler(uowFactory, publisher, logger)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Bidding window sweep failed: %v", err)
//	}
type ExpireBiddingWindowsCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrExpireBiddingWindowsCommandIsNotConstructed = errors.New(
		"ExpireBiddingWindowsCommand must be created via NewExpireBiddingWindowsCommand constructor",
	)
)

// NewExpireBiddingWindowsCommand creates a command to sweep expired bidding windows.
// This is a parameterless command that processes all overdue orders.
func NewExpireBiddingWindowsCommand() ExpireBiddingWindowsCommand {
	command := ExpireBiddingWindowsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireBiddingWindowsCommandIsNotConstructed if validation fails.
func (c *ExpireBiddingWindowsCommand) Validate() error {
	return c.guard.Validate(ErrExpireBiddingWindowsCommandIsNotConstructed)
}
