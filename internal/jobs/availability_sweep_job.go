package jobs

import "log/slog"

// DefaultAvailabilitySweepSchedule runs the sweep at the start of every minute.
const DefaultAvailabilitySweepSchedule = "0 * * * * *"

// AvailabilitySweepJob switches off the drivers whose balance dropped to the
// availability floor, in every tenant.
type AvailabilitySweepJob struct {
	*tenantJob
}

// NewAvailabilitySweepJob wires SweepAvailabilityCommandHandler to schedule.
func NewAvailabilitySweepJob(
	handler TenantCommand,
	tenants TenantSource,
	schedule string,
	logger *slog.Logger,
) *AvailabilitySweepJob {
	if schedule == "" {
		schedule = DefaultAvailabilitySweepSchedule
	}
	return &AvailabilitySweepJob{newTenantJob("availability_sweep_job", schedule, handler, tenants, logger)}
}
