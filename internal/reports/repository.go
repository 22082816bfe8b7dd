package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrowatch/hydrowatch/internal/platform/db"
	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// RepositoryPort defines persistence operations for community reports.
type RepositoryPort interface {
	Insert(ctx context.Context, report *Report) error
	List(ctx context.Context, waterBodyID string) ([]Report, error)
	Transition(ctx context.Context, id string, status ReportStatus) (*Report, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a new report.
func (r *Repository) Insert(ctx context.Context, report *Report) error {
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO community_reports (id, water_body_id, reporter_id, report_type, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		report.ID, report.WaterBodyID, report.ReporterID,
		string(report.ReportType), report.Description, string(report.Status), now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("reports: water body %s: %w", report.WaterBodyID, httpx.ErrNotFound)
		}
		return fmt.Errorf("reports: insert: %w", err)
	}
	return nil
}

// List returns reports, optionally filtered by water body, newest first.
func (r *Repository) List(ctx context.Context, waterBodyID string) ([]Report, error) {
	query := `
		SELECT id, water_body_id, reporter_id, report_type, description, status, created_at, updated_at
		FROM community_reports`
	args := []any{}
	if waterBodyID != "" {
		query += ` WHERE water_body_id = $1`
		args = append(args, waterBodyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: list: %w", err)
	}
	defer rows.Close()

	var result []Report
	for rows.Next() {
		var report Report
		if err := rows.Scan(&report.ID, &report.WaterBodyID, &report.ReporterID,
			&report.ReportType, &report.Description, &report.Status,
			&report.CreatedAt, &report.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reports: scan: %w", err)
		}
		result = append(result, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports: list rows: %w", err)
	}
	return result, nil
}

// Transition updates a report's lifecycle state and re-reads the row inside
// one transaction, so the returned report reflects this transition even when
// moderators race on the same report.
func (r *Repository) Transition(ctx context.Context, id string, status ReportStatus) (*Report, error) {
	var report Report
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE community_reports SET status = $2, updated_at = $3 WHERE id = $1`,
			id, string(status), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("reports: update status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return tx.QueryRow(ctx, `
			SELECT id, water_body_id, reporter_id, report_type, description, status, created_at, updated_at
			FROM community_reports WHERE id = $1`, id).
			Scan(&report.ID, &report.WaterBodyID, &report.ReporterID,
				&report.ReportType, &report.Description, &report.Status,
				&report.CreatedAt, &report.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

var _ RepositoryPort = (*Repository)(nil)
