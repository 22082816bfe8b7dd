package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hydrowatch/hydrowatch/internal/accounts"
	"github.com/hydrowatch/hydrowatch/internal/app"
	"github.com/hydrowatch/hydrowatch/internal/observability"
	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
	_ "github.com/hydrowatch/hydrowatch/testing"
)

type emptyAccountRepo struct{}

func (emptyAccountRepo) Insert(ctx context.Context, account *accounts.Account) error { return nil }
func (emptyAccountRepo) FindByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	return nil, httpx.ErrNotFound
}
func (emptyAccountRepo) FindByID(ctx context.Context, id string) (*accounts.Account, error) {
	return nil, httpx.ErrNotFound
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &app.Config{
		AppEnv:            "test",
		AppRequestTimeout: 5 * time.Second,
	}
	userService := accounts.NewService(emptyAccountRepo{}, accounts.TokenConfig{
		Secret: []byte("user-secret"), TTL: time.Hour, Role: accounts.RoleUser,
	})
	adminService := accounts.NewService(emptyAccountRepo{}, accounts.TokenConfig{
		Secret: []byte("admin-secret"), TTL: time.Hour, Role: accounts.RoleAdmin,
	})
	return app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		UserHandler:  accounts.NewHandler(logger, userService, accounts.RoleUser),
		AdminHandler: accounts.NewHandler(logger, adminService, accounts.RoleAdmin),
		UserService:  userService,
		AdminService: adminService,
		Metrics:      observability.NewMetrics(),
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected health body: %s", res.Body.String())
	}
}

func TestProfileRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/user/profile", "/api/v1/admin/profile"} {
		res := httptest.NewRecorder()
		router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, res.Code)
		}
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}
