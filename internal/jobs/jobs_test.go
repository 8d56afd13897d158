package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"logistics/internal/jobs"
	"logistics/internal/pkg/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTenants []tenant.ID

func (s staticTenants) Tenants() []tenant.ID { return s }

// recordingCommand remembers the tenant of every call and fails for the tenants
// listed in failFor.
type recordingCommand struct {
	mu      sync.Mutex
	seen    []tenant.ID
	failFor map[tenant.ID]bool
}

func (r *recordingCommand) Handle(ctx context.Context) (int64, error) {
	id, err := tenant.FromContext(ctx)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, id)
	if r.failFor[id] {
		return 0, errors.New("database is down")
	}
	return 1, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAvailabilitySweepJob_RunVisitsEveryTenant(t *testing.T) {
	cmd := &recordingCommand{failFor: map[tenant.ID]bool{"edu": true}}
	job := jobs.NewAvailabilitySweepJob(cmd, staticTenants{"edu", "main"}, "", discardLogger())

	job.Run(t.Context())

	assert.Equal(t, []tenant.ID{"edu", "main"}, cmd.seen)
}

func TestPendingReminderJob_RunStopsOnCanceledContext(t *testing.T) {
	cmd := &recordingCommand{}
	job := jobs.NewPendingReminderJob(cmd, staticTenants{"edu", "main"}, "", discardLogger())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	job.Run(ctx)

	assert.Empty(t, cmd.seen)
}

func TestJob_StartRejectsInvalidSchedule(t *testing.T) {
	job := jobs.NewPendingReminderJob(&recordingCommand{}, staticTenants{"main"}, "every now and then", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(&recordingCommand{}, &recordingCommand{}, staticTenants{"main"}, jobs.Schedules{}, discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_StartAllFailsOnBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(
		&recordingCommand{},
		&recordingCommand{},
		staticTenants{"main"},
		jobs.Schedules{PendingReminder: "not a cron expression"},
		discardLogger(),
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending reminder")
}
