// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are built on github.com/robfig/cron/v3 with second resolution.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox messages to Kafka in batches
//
// # Usage
//
//	jobManager := jobs.NewJobManager(publishOutboxHandler, jobs.OutboxConfig{
//		Schedule:  "*/2 * * * * *",
//		BatchSize: 100,
//		Timeout:   10 * time.Second,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay run is logged at ERROR and retried on the next tick. The
// messages of a failed batch stay unpublished, so delivery is at least once.
package jobs
