// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/tracing"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level: debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins,
	// comma-separated in CORS_ORIGINS.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`

	// TagComparison is how tag names are matched when finding existing tags:
	// "exact" (case-insensitive equality) or "like" (case-insensitive substring).
	TagComparison domain.Comparison `env:"TAG_COMPARISON" envDefault:"exact"`

	// TaggableContexts declares the taggable types and their contexts, as
	// "Type=ctx1,ctx2;Other=ctx3".
	TaggableContexts string `env:"TAGGABLE_CONTEXTS" envDefault:"Post=tags"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// PopularCacheTTL is how long popular-tag listings are served from memory.
	// Zero disables the cache.
	PopularCacheTTL time.Duration `env:"POPULAR_CACHE_TTL" envDefault:"30s"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	Tracing tracing.Config
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, if present, seeds variables that are
// not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if !cfg.TagComparison.Valid() {
		return Config{}, fmt.Errorf("config: TAG_COMPARISON must be %q or %q, got %q",
			domain.ComparisonExact, domain.ComparisonLike, cfg.TagComparison)
	}
	if _, err := cfg.TaggableTypes(); err != nil {
		return Config{}, fmt.Errorf("config: TAGGABLE_CONTEXTS: %w", err)
	}
	if cfg.MaxBodyBytes < 1 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}

// TaggableTypes parses TaggableContexts into taggable type declarations, in
// the order they are written. Each type is validated.
func (c Config) TaggableTypes() ([]domain.TaggableType, error) {
	var types []domain.TaggableType
	for _, decl := range strings.Split(c.TaggableContexts, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, contexts, ok := strings.Cut(decl, "=")
		if !ok {
			return nil, fmt.Errorf("%q: expected Type=context[,context]", decl)
		}
		t := domain.TaggableType{
			Name:     strings.TrimSpace(name),
			Contexts: trimAll(strings.Split(contexts, ",")),
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if len(types) == 0 {
		return nil, errors.New("no taggable types declared")
	}
	return types, nil
}

// trimAll trims every entry and drops the empty ones.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
