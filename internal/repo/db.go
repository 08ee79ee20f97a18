// Package repo contains all database access logic for the tag engine.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tagengine/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner is a db that can open a transaction. *pgxpool.Pool opens a real
// transaction; pgx.Tx opens a savepoint, which keeps tests rollback-isolated.
type beginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Tags     TagRepo
	Taggings TaggingRepo
}

// Store hands out repositories and runs units of work atomically.
type Store interface {
	// Repos returns repositories bound to the underlying connection, outside
	// any transaction.
	Repos() Repos

	// WithinTx runs fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

// pgStore is the Postgres implementation of Store.
type pgStore struct {
	db beginner
}

// NewStore constructs a Store backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStore(db beginner) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Repos() Repos {
	return Repos{Tags: NewTagRepo(s.db), Taggings: NewTaggingRepo(s.db)}
}

func (s *pgStore) WithinTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Store.WithinTx: begin: %w", err)
	}
	// Rollback after Commit is a no-op returning pgx.ErrTxClosed.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos{Tags: NewTagRepo(tx), Taggings: NewTaggingRepo(tx)}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Store.WithinTx: commit: %w", err)
	}
	return nil
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const uniqueViolation = "23505"

// mapError translates driver errors into domain sentinels: no rows becomes
// domain.ErrNotFound and a unique violation becomes domain.ErrConflict.
// Anything else is returned unchanged.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
