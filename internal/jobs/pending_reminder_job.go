package jobs

import "log/slog"

// DefaultPendingReminderSchedule runs the reminder every five minutes.
const DefaultPendingReminderSchedule = "0 */5 * * * *"

// PendingReminderJob re-notifies available drivers about orders that have been
// waiting too long, in every tenant.
type PendingReminderJob struct {
	*tenantJob
}

// NewPendingReminderJob wires RemindPendingOrdersCommandHandler to schedule.
func NewPendingReminderJob(
	handler TenantCommand,
	tenants TenantSource,
	schedule string,
	logger *slog.Logger,
) *PendingReminderJob {
	if schedule == "" {
		schedule = DefaultPendingReminderSchedule
	}
	return &PendingReminderJob{newTenantJob("pending_reminder_job", schedule, handler, tenants, logger)}
}
