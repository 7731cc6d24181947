package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Addr:            ":8080",
		DatabaseDialect: "postgres",
		DatabaseDSN:     "postgres://localhost/taskboard",
		Secret:          strings.Repeat("s", MinSecretLength),
		SigningMethod:   "HS256",
		AccessTokenTTL:  30 * time.Minute,
		ClockSkew:       30 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"HS384", func(c *Config) { c.SigningMethod = "HS384" }, false},
		{"HS512", func(c *Config) { c.SigningMethod = "HS512" }, false},
		{"sqlite", func(c *Config) { c.DatabaseDialect = "sqlite" }, false},
		{"mysql", func(c *Config) { c.DatabaseDialect = "mysql" }, false},
		{"unsupported method", func(c *Config) { c.SigningMethod = "RS256" }, true},
		{"short secret", func(c *Config) { c.Secret = "short" }, true},
		{"empty secret", func(c *Config) { c.Secret = "" }, true},
		{"zero TTL", func(c *Config) { c.AccessTokenTTL = 0 }, true},
		{"negative skew", func(c *Config) { c.ClockSkew = -time.Second }, true},
		{"unknown dialect", func(c *Config) { c.DatabaseDialect = "oracle" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TASKBOARD_ADDR", "")
	t.Setenv("TASKBOARD_SECRET", "")
	t.Setenv("TASKBOARD_TOKEN_TTL", "")

	cfg := FromEnv()
	if cfg.Addr != DefaultAddr {
		t.Errorf("expected default addr %s, got %s", DefaultAddr, cfg.Addr)
	}
	if cfg.AccessTokenTTL != DefaultAccessTokenTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultAccessTokenTTL, cfg.AccessTokenTTL)
	}
	if cfg.SigningMethod != "HS256" {
		t.Errorf("expected default signing method HS256, got %s", cfg.SigningMethod)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_ADDR", ":9999")
	t.Setenv("TASKBOARD_TOKEN_TTL", "1h")
	t.Setenv("TASKBOARD_DB_DIALECT", "sqlite")

	cfg := FromEnv()
	if cfg.Addr != ":9999" {
		t.Errorf("expected addr :9999, got %s", cfg.Addr)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Errorf("expected TTL 1h, got %v", cfg.AccessTokenTTL)
	}
	if cfg.DatabaseDialect != "sqlite" {
		t.Errorf("expected dialect sqlite, got %s", cfg.DatabaseDialect)
	}
}

func TestFromEnvBadDuration(t *testing.T) {
	t.Setenv("TASKBOARD_TOKEN_TTL", "not-a-duration")

	cfg := FromEnv()
	if cfg.AccessTokenTTL != DefaultAccessTokenTTL {
		t.Errorf("expected fallback to default TTL, got %v", cfg.AccessTokenTTL)
	}
}
