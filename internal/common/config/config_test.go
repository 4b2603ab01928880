package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.HTTP.Port != 3001 {
		t.Fatalf("expected default port 3001, got %d", cfg.HTTP.Port)
	}
	if cfg.Security.TokenTTL != time.Hour {
		t.Fatalf("expected default token TTL 1h, got %s", cfg.Security.TokenTTL)
	}
	if cfg.Security.VerificationExpiry != 3*time.Minute {
		t.Fatalf("expected verification expiry 3m, got %s", cfg.Security.VerificationExpiry)
	}
	if cfg.Security.RecoveryExpiry != 2*time.Minute {
		t.Fatalf("expected recovery expiry 2m, got %s", cfg.Security.RecoveryExpiry)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_PORT", "18080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RECOVERY_CODE_EXPIRY", "90s")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.HTTP.Port != 18080 {
		t.Fatalf("expected HTTP_PORT override, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Fatalf("expected DB overrides, got %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Security.TokenTTL != 30*time.Minute {
		t.Fatalf("expected TOKEN_TTL 30m, got %s", cfg.Security.TokenTTL)
	}
	if cfg.Security.RecoveryExpiry != 90*time.Second {
		t.Fatalf("expected RECOVERY_CODE_EXPIRY 90s, got %s", cfg.Security.RecoveryExpiry)
	}
	if !cfg.Storage.UseSSL {
		t.Fatalf("expected STORAGE_USE_SSL true")
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}
