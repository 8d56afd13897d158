package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/pkg/tenant"

	"github.com/robfig/cron/v3"
)

// TenantCommand is a scheduled command handler. It acts on the tenant carried by
// the context and reports how many records it touched.
type TenantCommand interface {
	Handle(ctx context.Context) (int64, error)
}

// TenantSource lists the tenants every run visits.
type TenantSource interface {
	Tenants() []tenant.ID
}

// tenantJob runs a command once per tenant on a cron schedule. A failing tenant is
// logged and does not keep the others from running.
type tenantJob struct {
	name     string
	schedule string
	handler  TenantCommand
	tenants  TenantSource
	cron     *cron.Cron
	logger   *slog.Logger
}

func newTenantJob(name, schedule string, handler TenantCommand, tenants TenantSource, logger *slog.Logger) *tenantJob {
	return &tenantJob{
		name:     name,
		schedule: schedule,
		handler:  handler,
		tenants:  tenants,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", name),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *tenantJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a run in progress to finish.
func (j *tenantJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Job stopped")
}

// Run executes one pass over every tenant.
func (j *tenantJob) Run(ctx context.Context) {
	for _, id := range j.tenants.Tenants() {
		if ctx.Err() != nil {
			return
		}

		tenantCtx := tenant.WithTenant(ctx, id)
		affected, err := j.handler.Handle(tenantCtx)
		if err != nil {
			j.logger.ErrorContext(tenantCtx, "Job failed", "tenant", id, "error", err)
			continue
		}
		if affected > 0 {
			j.logger.InfoContext(tenantCtx, "Job run", "tenant", id, "affected", affected)
		}
	}
}
