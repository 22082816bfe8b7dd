package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// ErrInvalidCredentials indicates a password mismatch on login.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", httpx.ErrUnauthorized)

// Service wraps registration and authentication rules for one role. Two
// instances run side by side, bound to disjoint stores and distinct signing
// secrets.
type Service struct {
	repo   Repository
	tokens TokenConfig
}

// NewService constructs a Service.
func NewService(repo Repository, tokens TokenConfig) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// RegisterInput carries the validated signup fields. Validation happens at
// the handler boundary before any hashing work.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register hashes the password and persists a new account. A duplicate email
// surfaces httpx.ErrDuplicate so the boundary can answer with a conflict
// instead of a server error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("accounts: hash password: %w", err)
	}
	account := &Account{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.repo.Insert(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies credentials and issues a signed bearer token. An unknown
// email reports not-found; a wrong password reports unauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return "", fmt.Errorf("accounts: no account for email: %w", httpx.ErrNotFound)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return IssueToken(s.tokens, account.ID)
}

// Profile re-reads the account behind a verified token.
func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return account.Profile(), nil
}

// Verify checks a raw bearer token against this role's signing secret.
func (s *Service) Verify(tokenString string) (string, error) {
	return VerifyToken(s.tokens, tokenString)
}
