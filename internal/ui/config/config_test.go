package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	if cfg.Environment != "dev" || cfg.Port != 3000 || cfg.APIBaseURL != "http://localhost:5000" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != 60*time.Second {
		t.Errorf("unexpected timeout defaults: read %v idle %v", cfg.ReadTimeout, cfg.IdleTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("PORT", "8081")
	t.Setenv("API_BASE_URL", "https://api.ecosort.example")
	t.Setenv("ALLOWED_ORIGINS", "https://ecosort.example| https://www.ecosort.example")
	t.Setenv("READ_TIMEOUT", "5s")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	if cfg.Port != 8081 || cfg.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v, want 2 origins", cfg.AllowedOrigins)
	}

	if _, err := NewCORSMiddleware(cfg); err != nil {
		t.Errorf("NewCORSMiddleware() error: %v", err)
	}
}

func TestValidateUIConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Environment:    "dev",
			Port:           3000,
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			IdleTimeout:    time.Second,
			APIBaseURL:     "http://localhost:5000",
			RateLimitRPS:   10,
			RateLimitBurst: 5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"valid api url with trailing slash", func(c *Config) { c.APIBaseURL = "http://localhost:5000/" }, false},
		{"unknown environment", func(c *Config) { c.Environment = "qa" }, true},
		{"port too low", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, true},
		{"negative write timeout", func(c *Config) { c.WriteTimeout = -time.Second }, true},
		{"zero idle timeout", func(c *Config) { c.IdleTimeout = 0 }, true},
		{"empty api url", func(c *Config) { c.APIBaseURL = "" }, true},
		{"api url without scheme", func(c *Config) { c.APIBaseURL = "localhost:5000" }, true},
		{"api url with path", func(c *Config) { c.APIBaseURL = "http://localhost:5000/api" }, true},
		{"api url with unsupported scheme", func(c *Config) { c.APIBaseURL = "ftp://localhost" }, true},
		{"rate limit disabled", func(c *Config) { c.RateLimitRPS = 0; c.RateLimitBurst = 0 }, false},
		{"negative rate limit", func(c *Config) { c.RateLimitRPS = -1 }, true},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, true},
		{"wildcard origin in prod", func(c *Config) { c.Environment = "prod"; c.AllowedOrigins = []string{"*"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validateUIConfig(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateUIConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
