// Package jobs provides scheduled background tasks for the waste tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob drains the transactional outbox: every event committed together with
// a route process but never marked dispatched (the process stopped after commit, or a
// handler failed) is published again, oldest first, keeping the order of each route.
//
// # Usage
//
//	relay := events.NewOutboxRelay(outboxStore, dispatcher, events.RelayConfig{}, time.Now, logger)
//	jobManager := jobs.NewJobManager(jobs.NewOutboxRelayJob(relay, cfg.OutboxRelaySchedule, logger), logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds. The default, "*/5 * * * * *",
// runs the relay every five seconds; a tick that fires while a drain is still running
// is skipped.
package jobs
