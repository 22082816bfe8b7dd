package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

type mockRepository struct {
	byEmail map[string]*Account
	byID    map[string]*Account

	insertError error
	findError   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byEmail: make(map[string]*Account),
		byID:    make(map[string]*Account),
	}
}

func (m *mockRepository) Insert(ctx context.Context, account *Account) error {
	if m.insertError != nil {
		return m.insertError
	}
	if _, ok := m.byEmail[account.Email]; ok {
		return httpx.ErrDuplicate
	}
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	m.byEmail[account.Email] = account
	m.byID[account.ID] = account
	return nil
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	if m.findError != nil {
		return nil, m.findError
	}
	account, ok := m.byEmail[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return account, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	if m.findError != nil {
		return nil, m.findError
	}
	account, ok := m.byID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return account, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, TokenConfig{
		Secret: []byte("service-test-secret"),
		TTL:    time.Hour,
		Role:   RoleUser,
	})
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), RegisterInput{
		Email:     "jane@test.local",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)

	assert.NotEqual(t, "secret123", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")))
}

func TestRegisterSurfacesDuplicate(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	in := RegisterInput{Email: "jane@test.local", Password: "secret123", FirstName: "Jane", LastName: "Doe"}

	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), RegisterInput{
		Email: "jane@test.local", Password: "secret123", FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "jane@test.local", "secret123")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, subject)
}

func TestLoginUnknownEmailReportsNotFound(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Login(context.Background(), "ghost@test.local", "whatever")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestLoginWrongPasswordReportsUnauthorized(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "jane@test.local", Password: "secret123", FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "jane@test.local", "wrongpass")
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginPropagatesRepositoryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.findError = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "jane@test.local", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, httpx.ErrNotFound)
}

func TestProfileOmitsPasswordHash(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), RegisterInput{
		Email: "jane@test.local", Password: "secret123", FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, profile.Email)
	assert.Equal(t, account.FirstName, profile.FirstName)
	assert.WithinDuration(t, account.CreatedAt, profile.CreatedAt, time.Second)
}
