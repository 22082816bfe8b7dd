package catalog

import "context"

// Service handles registry business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all monitored water bodies.
func (s *Service) List(ctx context.Context) ([]WaterBody, error) {
	return s.repo.List(ctx)
}

// Get returns one water body by id.
func (s *Service) Get(ctx context.Context, id string) (*WaterBody, error) {
	return s.repo.Get(ctx, id)
}
