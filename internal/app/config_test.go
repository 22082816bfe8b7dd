package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_USER_SECRET", "user-secret")
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.AppAddr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.IsProduction() {
		t.Fatalf("development config must not report production")
	}
}

func TestLoadConfigRejectsMissingSecrets(t *testing.T) {
	t.Setenv("JWT_USER_SECRET", "")
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for missing user secret")
	}
}

func TestLoadConfigRejectsSharedSecret(t *testing.T) {
	t.Setenv("JWT_USER_SECRET", "same-secret")
	t.Setenv("JWT_ADMIN_SECRET", "same-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for identical role secrets")
	}
}
