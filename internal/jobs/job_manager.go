package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// OutboxConfig tunes the outbox relay.
type OutboxConfig struct {
	Schedule  string
	BatchSize int
	Timeout   time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

func NewJobManager(outboxHandler OutboxHandler, outbox OutboxConfig, logger *slog.Logger) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(outboxHandler, outbox.Schedule, outbox.BatchSize, outbox.Timeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
