// Package cli implements tagctl, the operator command line for the tag
// engine: schema migrations, tag listings and lookups, retagging an entity
// and relation queries, all run directly against the database.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/tagengine/internal/config"
	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/repo"
	"github.com/pkordes/tagengine/internal/service"
)

// envPrefix namespaces tagctl's environment variables, e.g.
// TAGENGINE_DATABASE_URL for --database-url.
const envPrefix = "TAGENGINE"

// settings is the resolved configuration shared by every subcommand.
type settings struct {
	DatabaseURL   string
	Types         []domain.TaggableType
	TagComparison domain.Comparison
	LogLevel      slog.Level
}

// NewRootCommand builds the tagctl command tree. Each call returns a fresh
// tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	return newRootCommand(viper.New())
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "tagctl",
		Short: "Operate a tag engine database",
		Long: `tagctl manages the tag engine schema and inspects or edits tags directly
in the database.

Every flag can also be set through the environment with the TAGENGINE_
prefix, e.g. TAGENGINE_DATABASE_URL, or from the file named by --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return readConfigFile(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("database-url", "", "Postgres connection string")
	flags.String("taggable-contexts", "Post=tags", `taggable types and contexts, as "Type=ctx1,ctx2;Other=ctx3"`)
	flags.String("tag-comparison", string(domain.ComparisonExact), `tag name matching: "exact" or "like"`)
	flags.String("log-level", "warn", "minimum log level: debug, info, warn or error")
	_ = v.BindPFlags(flags)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newMigrateCommand(v),
		newNamesCommand(v),
		newTagCommand(v),
		newRetagCommand(v),
		newRelatedCommand(v),
	)
	return root
}

func readConfigFile(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// loadSettings resolves and validates the persistent flags.
func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		DatabaseURL:   strings.TrimSpace(v.GetString("database-url")),
		TagComparison: domain.Comparison(v.GetString("tag-comparison")),
	}
	if s.DatabaseURL == "" {
		return settings{}, errors.New("a database url is required: set --database-url or TAGENGINE_DATABASE_URL")
	}
	if !s.TagComparison.Valid() {
		return settings{}, fmt.Errorf("--tag-comparison must be %q or %q, got %q",
			domain.ComparisonExact, domain.ComparisonLike, s.TagComparison)
	}
	if err := s.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return settings{}, fmt.Errorf("--log-level: %w", err)
	}

	types, err := config.Config{TaggableContexts: v.GetString("taggable-contexts")}.TaggableTypes()
	if err != nil {
		return settings{}, fmt.Errorf("--taggable-contexts: %w", err)
	}
	s.Types = types
	return s, nil
}

// session holds the connection pool and the services built on it for the
// lifetime of one command.
type session struct {
	pool      *pgxpool.Pool
	tags      *service.TagRegistry
	taggings  *service.TaggingStore
	relations *service.Relations
}

// openSession connects to the database and wires the services. Callers must
// Close the session.
func openSession(ctx context.Context, cmd *cobra.Command, v *viper.Viper) (*session, error) {
	s, err := loadSettings(v)
	if err != nil {
		return nil, err
	}
	pool, err := connect(ctx, s.DatabaseURL)
	if err != nil {
		return nil, err
	}

	types, err := service.NewTypeRegistry(s.Types...)
	if err != nil {
		pool.Close()
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.LogLevel}))

	store := repo.NewStore(pool)
	tags := service.NewTagRegistry(store.Repos().Tags, service.TagRegistryConfig{
		Comparison: s.TagComparison,
		Logger:     log,
	})
	return &session{
		pool:      pool,
		tags:      tags,
		taggings:  service.NewTaggingStore(store, tags, types, log),
		relations: service.NewRelations(store, types),
	}, nil
}

func (s *session) Close() {
	s.pool.Close()
}

func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}
