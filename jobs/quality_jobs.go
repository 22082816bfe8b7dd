package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/hydrowatch/hydrowatch/internal/quality"
)

// QualityJobs bundles the background cache maintenance handlers.
type QualityJobs struct {
	service *quality.Service
	logger  *slog.Logger
}

// NewQualityJobs constructs the handlers around the quality service.
func NewQualityJobs(service *quality.Service, logger *slog.Logger) *QualityJobs {
	return &QualityJobs{service: service, logger: logger}
}

// Handlers returns the task registrations for the worker mux.
func (j *QualityJobs) Handlers() []TaskHandler {
	return []TaskHandler{
		{Type: TaskQualityOverviewWarmup, Handler: j.HandleOverviewWarmup},
		{Type: TaskQualityLakeRefresh, Handler: j.HandleLakeRefresh},
	}
}

// HandleOverviewWarmup rebuilds the dashboard overview cache.
func (j *QualityJobs) HandleOverviewWarmup(ctx context.Context, task *asynq.Task) error {
	var payload OverviewWarmupPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("jobs: decode overview warmup payload: %w", err)
		}
	}

	started := time.Now()
	overview, err := j.service.RefreshOverview(ctx)
	if err != nil {
		return fmt.Errorf("jobs: refresh overview: %w", err)
	}
	j.logger.Info("overview cache warmed",
		slog.String("reason", payload.Reason),
		slog.Int("lakes", len(overview.Lakes)),
		slog.Duration("took", time.Since(started)))
	return nil
}

// HandleLakeRefresh rebuilds one lake's cached readings.
func (j *QualityJobs) HandleLakeRefresh(ctx context.Context, task *asynq.Task) error {
	var payload LakeRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("jobs: decode lake refresh payload: %w", err)
	}
	if payload.WaterBodyID == "" {
		return fmt.Errorf("jobs: lake refresh payload missing water body id")
	}

	if err := j.service.RefreshLake(ctx, payload.WaterBodyID); err != nil {
		return fmt.Errorf("jobs: refresh lake %s: %w", payload.WaterBodyID, err)
	}
	j.logger.Info("lake cache refreshed", slog.String("water_body", payload.WaterBodyID))
	return nil
}
