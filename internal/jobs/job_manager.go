package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions (with seconds) of the jobs. Empty values
// fall back to the defaults.
type Schedules struct {
	AvailabilitySweep string
	PendingReminder   string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	availabilitySweepJob *AvailabilitySweepJob
	pendingReminderJob   *PendingReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepHandler TenantCommand,
	reminderHandler TenantCommand,
	tenants TenantSource,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		availabilitySweepJob: NewAvailabilitySweepJob(sweepHandler, tenants, schedules.AvailabilitySweep, logger),
		pendingReminderJob:   NewPendingReminderJob(reminderHandler, tenants, schedules.PendingReminder, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.availabilitySweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start availability sweep job: %w", err)
	}

	if err := jm.pendingReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.availabilitySweepJob.Stop()
		return fmt.Errorf("failed to start pending reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingReminderJob.Stop()
	jm.availabilitySweepJob.Stop()
}
