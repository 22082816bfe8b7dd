package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// Repository defines persistence operations for one role's accounts.
type Repository interface {
	Insert(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
}

// PGRepository implements Repository on PostgreSQL. One instance is bound to
// one role's table; the user and admin stores never overlap.
type PGRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository constructs a repository for the given role.
func NewRepository(pool *pgxpool.Pool, role Role) *PGRepository {
	return &PGRepository{pool: pool, table: role.Table()}
}

// Insert persists a new account. The table's unique index on email makes
// concurrent duplicate signups resolve to exactly one winner; the loser
// surfaces httpx.ErrDuplicate.
func (r *PGRepository) Insert(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, password_hash, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`, r.table)
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	_, err := r.pool.Exec(ctx, query,
		account.ID, account.Email, account.PasswordHash,
		account.FirstName, account.LastName, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("accounts: email %s: %w", account.Email, httpx.ErrDuplicate)
		}
		return fmt.Errorf("accounts: insert: %w", err)
	}
	return nil
}

// FindByEmail fetches an account by its login key.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
		FROM %s WHERE email = $1`, r.table)
	return r.scanOne(ctx, query, email)
}

// FindByID fetches an account by identifier.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
		FROM %s WHERE id = $1`, r.table)
	return r.scanOne(ctx, query, id)
}

func (r *PGRepository) scanOne(ctx context.Context, query string, arg any) (*Account, error) {
	var account Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.FirstName, &account.LastName,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("accounts: query: %w", err)
	}
	return &account, nil
}

var _ Repository = (*PGRepository)(nil)
