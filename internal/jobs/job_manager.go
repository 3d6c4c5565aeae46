package jobs

import (
	"fmt"
	"log/slog"

	"cementops/internal/core/application/usecases/queries"
	"cementops/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	scheduleForecastJob *ScheduleForecastJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	generateScheduleHandler queries.GenerateScheduleQueryHandler,
	dailyLimit kernel.Tonnage,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduleForecastJob: NewScheduleForecastJob(generateScheduleHandler, dailyLimit, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.scheduleForecastJob.Start(); err != nil {
		return fmt.Errorf("failed to start schedule forecast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.scheduleForecastJob.Stop()
}
