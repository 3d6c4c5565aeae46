package jobs

import (
	"context"
	"log/slog"

	"cementops/internal/core/application/usecases/queries"
	"cementops/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// ScheduleForecastJob computes a schedule proposal every morning and logs its
// statistics so the dispatch team starts the day with a packing forecast.
// The proposal is never persisted; dispatchers commit loads through the API.
type ScheduleForecastJob struct {
	handler    queries.GenerateScheduleQueryHandler
	dailyLimit kernel.Tonnage
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewScheduleForecastJob creates a job that forecasts the daily schedule.
func NewScheduleForecastJob(
	handler queries.GenerateScheduleQueryHandler,
	dailyLimit kernel.Tonnage,
	logger *slog.Logger,
) *ScheduleForecastJob {
	return &ScheduleForecastJob{
		handler:    handler,
		dailyLimit: dailyLimit,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "schedule_forecast_job"),
	}
}

// Start schedules the forecast to run every morning at 06:00.
func (j *ScheduleForecastJob) Start() error {
	_, err := j.cron.AddFunc("0 0 6 * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Schedule forecast job started (running daily at 06:00)")
	return nil
}

// Stop stops the forecast job.
func (j *ScheduleForecastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Schedule forecast job stopped")
}

func (j *ScheduleForecastJob) run() {
	ctx := context.Background()

	query, err := queries.NewGenerateScheduleQuery(j.dailyLimit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Schedule forecast job misconfigured", "error", err)
		return
	}

	proposal, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Schedule forecast failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Schedule forecast computed",
		"pending_orders", proposal.Stats.TotalPendingOrders,
		"pending_quantity", proposal.Stats.TotalPendingQuantity.String(),
		"scheduled_orders", proposal.Stats.ScheduledOrders,
		"scheduled_quantity", proposal.Stats.ScheduledQuantity.String(),
		"trucks_utilized", proposal.Stats.TrucksUtilized,
		"total_trucks", proposal.Stats.TotalTrucks,
		"daily_limit", proposal.Stats.DailyLimit.String(),
	)
}
