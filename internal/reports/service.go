package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// Service handles community report business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new report.
type CreateInput struct {
	WaterBodyID string
	ReporterID  string
	ReportType  ReportType
	Description string
}

// Create stores a new report in the pending state.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Report, error) {
	report := &Report{
		ID:          uuid.New().String(),
		WaterBodyID: in.WaterBodyID,
		ReporterID:  in.ReporterID,
		ReportType:  in.ReportType,
		Description: in.Description,
		Status:      StatusPending,
	}
	if err := s.repo.Insert(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns reports, optionally scoped to one water body.
func (s *Service) List(ctx context.Context, waterBodyID string) ([]Report, error) {
	return s.repo.List(ctx, waterBodyID)
}

// Transition moves a report to a new lifecycle state.
func (s *Service) Transition(ctx context.Context, id string, status ReportStatus) (*Report, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, httpx.ErrValidation)
	}
	return s.repo.Transition(ctx, id, status)
}
