package jobs

import (
	"context"
	"log/slog"

	"wastetrack/internal/core/application/events"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

// OutboxDrainer is satisfied by events.OutboxRelay.
type OutboxDrainer interface {
	Drain(ctx context.Context) (events.DrainResult, error)
}

// OutboxRelayJob re-dispatches outbox entries that were committed but never marked
// dispatched. A run that is still draining when the next tick fires makes that tick
// a no-op.
type OutboxRelayJob struct {
	relay    OutboxDrainer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the job. schedule is a cron expression with a seconds
// field; an empty one means DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(relay OutboxDrainer, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		relay:    relay,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the job.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce drains one batch.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	res, err := j.relay.Drain(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}
	if res.Dispatched+res.Failed+res.Deferred > 0 {
		j.logger.InfoContext(ctx, "Outbox drained",
			"dispatched", res.Dispatched,
			"failed", res.Failed,
			"deferred", res.Deferred,
		)
	}
}

// Stop stops scheduling and waits for a running drain to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
