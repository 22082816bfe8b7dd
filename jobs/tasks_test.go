package jobs

import (
	"encoding/json"
	"testing"
)

func TestNewOverviewWarmupTask(t *testing.T) {
	task, err := NewOverviewWarmupTask("scheduled")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TaskQualityOverviewWarmup {
		t.Fatalf("unexpected task type %q", task.Type())
	}
	var payload OverviewWarmupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Reason != "scheduled" {
		t.Fatalf("expected reason scheduled, got %q", payload.Reason)
	}
}

func TestNewLakeRefreshTask(t *testing.T) {
	task, err := NewLakeRefreshTask("3")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TaskQualityLakeRefresh {
		t.Fatalf("unexpected task type %q", task.Type())
	}
	var payload LakeRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.WaterBodyID != "3" {
		t.Fatalf("expected water body 3, got %q", payload.WaterBodyID)
	}
}

func TestNewLakeRefreshTaskRequiresID(t *testing.T) {
	if _, err := NewLakeRefreshTask(""); err == nil {
		t.Fatalf("expected error for empty water body id")
	}
}
