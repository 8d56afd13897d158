// Package jobs provides scheduled background tasks for the logistics backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Every run visits each configured tenant in turn, with the tenant stored in the
// context so the command handlers open the right database.
//
// # Available Jobs
//
// 1. AvailabilitySweepJob - Runs every minute and switches off drivers whose balance is at or below the floor
// 2. PendingReminderJob - Runs every five minutes and reminds available drivers of orders left waiting
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, reminderHandler, registry, jobs.Schedules{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. Empty schedules use
// DefaultAvailabilitySweepSchedule and DefaultPendingReminderSchedule.
//
// # Error Handling
//
// - A failing tenant is logged and the run carries on with the next one
// - Failed job starts will stop any already running jobs
package jobs
