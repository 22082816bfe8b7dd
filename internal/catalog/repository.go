package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// RepositoryPort defines data access methods for the water-body registry.
type RepositoryPort interface {
	List(ctx context.Context) ([]WaterBody, error)
	Get(ctx context.Context, id string) (*WaterBody, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all registered water bodies ordered by name.
func (r *Repository) List(ctx context.Context) ([]WaterBody, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, location, area_hectares, coordinates, last_updated
		FROM water_bodies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var bodies []WaterBody
	for rows.Next() {
		body, err := scanWaterBody(rows)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, *body)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list rows: %w", err)
	}
	return bodies, nil
}

// Get returns a single water body by id.
func (r *Repository) Get(ctx context.Context, id string) (*WaterBody, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, location, area_hectares, coordinates, last_updated
		FROM water_bodies WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: get: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("catalog: get rows: %w", err)
		}
		return nil, httpx.ErrNotFound
	}
	return scanWaterBody(rows)
}

func scanWaterBody(row pgx.Row) (*WaterBody, error) {
	var body WaterBody
	var coordinates []byte
	if err := row.Scan(&body.ID, &body.Name, &body.Location,
		&body.AreaHectares, &coordinates, &body.LastUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("catalog: scan: %w", err)
	}
	if err := json.Unmarshal(coordinates, &body.Coordinates); err != nil {
		return nil, fmt.Errorf("catalog: decode coordinates: %w", err)
	}
	return &body, nil
}

var _ RepositoryPort = (*Repository)(nil)
