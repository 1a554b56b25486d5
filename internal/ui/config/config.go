package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/jub0bs/cors"
)

// UI server config
type Config struct {
	Environment    string        `env:"ENVIRONMENT,default=dev"`
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=3000"`
	LogLevel       string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	APIBaseURL     string        `env:"API_BASE_URL,default=http://localhost:5000"` // origin of the backend, the client adds /api
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS,separator=|"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS,default=100"` // 0 = disabled
	RateLimitBurst int           `env:"RATE_LIMIT_BURST,default=20"`
}

const (
	ServerShutdownTimeout = 10 * time.Second
	RequestTimeout        = 60 * time.Second // chi middleware timeout for page requests
	CORSMaxAgeInSeconds   = 86400            // 24 hours
)

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

// NewConfig loads the UI configuration from the environment
func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateUIConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func validateUIConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	u, err := url.ParseRequestURI(cfg.APIBaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %s", cfg.APIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must use http or https: %s", cfg.APIBaseURL)
	}
	if strings.TrimRight(u.Path, "/") != "" {
		return fmt.Errorf("API_BASE_URL should not include a path, /api is added by the client: %s", cfg.APIBaseURL)
	}

	// RATE_LIMIT_RPS=0 disables rate limiting
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS cannot be negative, got %d", cfg.RateLimitRPS)
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", cfg.RateLimitBurst)
	}

	if cfg.Environment == "prod" || cfg.Environment == "staging" {
		if len(cfg.AllowedOrigins) > 0 && strings.TrimSpace(cfg.AllowedOrigins[0]) == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	// default to all origins when not set
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return nil
}

// NewCORSMiddleware creates the CORS policy for the UI pages: read-only methods from the allowed origins
func NewCORSMiddleware(cfg *Config) (*cors.Middleware, error) {
	// Trim whitespace from all origins
	origins := make([]string, len(cfg.AllowedOrigins))
	for i, origin := range cfg.AllowedOrigins {
		origins[i] = strings.TrimSpace(origin)
	}

	mw, err := cors.NewMiddleware(cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodGet,
			http.MethodHead,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create CORS middleware: %w", err)
	}
	return mw, nil
}
