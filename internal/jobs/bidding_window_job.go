package jobs

import (
	"context"
	"log/slog"

	"freightline/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BiddingWindowJob sweeps orders whose bidding window has elapsed without an
// accepted bid and declines them together with their open bids.
type BiddingWindowJob struct {
	handler  commands.ExpireBiddingWindowsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewBiddingWindowJob creates the bidding window sweep running on the given
// cron schedule (with seconds field).
func NewBiddingWindowJob(
	handler commands.ExpireBiddingWindowsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *BiddingWindowJob {
	return &BiddingWindowJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "bidding_window_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *BiddingWindowJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewExpireBiddingWindowsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Bidding window sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Bidding window job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *BiddingWindowJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Bidding window job stopped")
}
