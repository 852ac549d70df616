package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob drains pending outbox messages to the message broker.
// Runs every second so integration events leave the store with low latency.
type OutboxRelayJob struct {
	handler commands.RelayOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxRelayJob creates a new job for relaying outbox messages.
func NewOutboxRelayJob(handler commands.RelayOutboxCommandHandler, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewRelayOutboxCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Outbox relay command construction failed", "error", cmdErr)
			return
		}

		published, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", handleErr, "published", published)
			return
		}

		if published > 0 {
			j.logger.InfoContext(ctx, "Relayed outbox messages", "published", published)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
