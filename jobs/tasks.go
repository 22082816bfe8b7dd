package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskQualityOverviewWarmup rebuilds the dashboard overview cache.
	TaskQualityOverviewWarmup = "quality:overview_warmup"
	// TaskQualityLakeRefresh refreshes one lake's cached readings.
	TaskQualityLakeRefresh = "quality:lake_refresh"
)

// OverviewWarmupPayload parametrises an overview warmup run.
type OverviewWarmupPayload struct {
	Reason string `json:"reason"`
}

// NewOverviewWarmupTask constructs an Asynq task.
func NewOverviewWarmupTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(OverviewWarmupPayload{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal overview warmup payload: %w", err)
	}
	return asynq.NewTask(TaskQualityOverviewWarmup, data), nil
}

// LakeRefreshPayload identifies the lake whose caches should be rebuilt.
type LakeRefreshPayload struct {
	WaterBodyID string `json:"water_body_id"`
}

// NewLakeRefreshTask constructs an Asynq task.
func NewLakeRefreshTask(waterBodyID string) (*asynq.Task, error) {
	if waterBodyID == "" {
		return nil, fmt.Errorf("jobs: water body id required")
	}
	data, err := json.Marshal(LakeRefreshPayload{WaterBodyID: waterBodyID})
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal lake refresh payload: %w", err)
	}
	return asynq.NewTask(TaskQualityLakeRefresh, data), nil
}
