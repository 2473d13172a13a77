package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
	logger  *slog.Logger
}

// NewJobManager creates a job manager running the outbox relay.
func NewJobManager(outboxRelay *OutboxRelayJob, logger *slog.Logger) *JobManager {
	m := &JobManager{logger: logger.With("component", "job_manager")}
	m.Add("outbox relay", outboxRelay)
	return m
}

// Add registers another job. Jobs start in the order they were added.
func (m *JobManager) Add(name string, job Job) {
	m.jobs = append(m.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs. When one fails, the jobs already started are
// stopped again.
func (m *JobManager) StartAll() error {
	for _, j := range m.jobs {
		if err := j.job.Start(); err != nil {
			m.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		m.started = append(m.started, j)
	}
	m.logger.Info("Jobs started", "count", len(m.started))
	return nil
}

// StopAll stops the started jobs in reverse order.
func (m *JobManager) StopAll() {
	for i := len(m.started) - 1; i >= 0; i-- {
		m.started[i].job.Stop()
	}
	m.started = nil
}
