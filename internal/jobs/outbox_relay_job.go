package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxHandler publishes one batch of pending outbox messages.
type OutboxHandler interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) error
}

// OutboxRelayJob periodically pushes pending domain events to the broker.
// A run that is still busy when the next tick fires makes that tick skip.
type OutboxRelayJob struct {
	handler   OutboxHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay. schedule is a six field cron
// expression (seconds first), e.g. "*/2 * * * * *".
func NewOutboxRelayJob(
	handler OutboxHandler, schedule string, batchSize int, timeout time.Duration, logger *slog.Logger,
) *OutboxRelayJob {
	logger = logger.With("component", "outbox_relay_job")
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

// Start validates the batch size and schedules the relay.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

func (j *OutboxRelayJob) run(cmd commands.PublishOutboxCommand) {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
	}
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
