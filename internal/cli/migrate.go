package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/tagengine/migrations"
)

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply, roll back or inspect the embedded schema migrations.

Examples:
  tagctl migrate up        Apply every pending migration
  tagctl migrate down      Roll back the most recent migration
  tagctl migrate status    List migrations and whether they are applied`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, v, func(ctx context.Context, p *goose.Provider) error {
					results, err := p.Up(ctx)
					if err != nil {
						return err
					}
					if len(results) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
					}
					for _, res := range results {
						printResult(cmd.OutOrStdout(), res)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, v, func(ctx context.Context, p *goose.Provider) error {
					res, err := p.Down(ctx)
					if err != nil {
						return err
					}
					printResult(cmd.OutOrStdout(), res)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, v, func(ctx context.Context, p *goose.Provider) error {
					statuses, err := p.Status(ctx)
					if err != nil {
						return err
					}
					printStatuses(cmd.OutOrStdout(), statuses)
					return nil
				})
			},
		},
	)
	return cmd
}

// withProvider connects, builds a goose provider over the embedded
// migrations and runs fn with it.
func withProvider(cmd *cobra.Command, v *viper.Viper, fn func(context.Context, *goose.Provider) error) error {
	s, err := loadSettings(v)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	pool, err := connect(ctx, s.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	if err := fn(ctx, p); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func printResult(w io.Writer, res *goose.MigrationResult) {
	if res == nil || res.Source == nil {
		return
	}
	fmt.Fprintf(w, "%s %s (%d) in %s\n",
		res.Direction, filepath.Base(res.Source.Path), res.Source.Version, res.Duration.Round(time.Millisecond))
}

func printStatuses(w io.Writer, statuses []*goose.MigrationStatus) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Version", "Migration", "State", "Applied at"})
	for _, st := range statuses {
		applied := "-"
		if !st.AppliedAt.IsZero() {
			applied = st.AppliedAt.UTC().Format(time.DateTime)
		}
		t.AppendRow(table.Row{st.Source.Version, filepath.Base(st.Source.Path), st.State, applied})
	}
	t.Render()
}
