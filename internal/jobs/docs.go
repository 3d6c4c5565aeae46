// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for delivery planning.
//
// # Available Jobs
//
// 1. ScheduleForecastJob - Runs every morning to compute a schedule proposal
// for the pending backlog and log its statistics for the dispatch team.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(generateScheduleHandler, dailyLimit, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The forecast job only reads; failures are logged and the next run retries
// from scratch. Failed job starts will stop any already running jobs.
package jobs
