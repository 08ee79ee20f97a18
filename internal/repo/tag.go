package repo

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tagengine/internal/domain"
)

// TagRepo defines the persistence operations for canonical Tags.
type TagRepo interface {
	// FindByName returns the tag matching name under the given comparison.
	// With domain.ComparisonLike an exact case-insensitive hit wins over a
	// substring hit. Returns domain.ErrNotFound if nothing matches.
	FindByName(ctx context.Context, name string, cmp domain.Comparison) (domain.Tag, error)

	// FindByNames returns every tag whose name equals one of names, ignoring case.
	FindByNames(ctx context.Context, names []string) ([]domain.Tag, error)

	// NamedLike returns all tags whose name contains fragment, ignoring case,
	// ordered by name.
	NamedLike(ctx context.Context, fragment string) ([]domain.Tag, error)

	// Create inserts a tag with a zero usage count.
	// Returns domain.ErrConflict if a tag with the same name (ignoring case) exists.
	Create(ctx context.Context, name string) (domain.Tag, error)

	// Names returns every tag name, ordered by name when sorted is true.
	Names(ctx context.Context, sorted bool) ([]string, error)

	// ListPaged returns one page of tags whose name starts with prefix
	// (ignoring case), ordered by name, plus the total number of matches.
	ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)

	// All returns every tag ordered by name.
	All(ctx context.Context) ([]domain.Tag, error)

	// Popular returns up to limit tags in use, most used first.
	Popular(ctx context.Context, limit int) ([]domain.Tag, error)

	// AdjustUsage adds each delta to the usage counter of its tag.
	AdjustUsage(ctx context.Context, deltas map[uuid.UUID]int64) error
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

const tagColumns = `id, name, usage_count, created_at`

func (r *pgTagRepo) FindByName(ctx context.Context, name string, cmp domain.Comparison) (domain.Tag, error) {
	q := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE lower(name) = lower(@name)
		LIMIT 1`
	args := pgx.NamedArgs{"name": name}
	if cmp == domain.ComparisonLike {
		q = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE name ILIKE '%' || @pattern || '%'
		ORDER BY (lower(name) = lower(@name)) DESC, name
		LIMIT 1`
		args["pattern"] = escapeLike(name)
	}

	result, err := scanTag(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.FindByName: %w", err)
	}
	return result, nil
}

func (r *pgTagRepo) FindByNames(ctx context.Context, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return []domain.Tag{}, nil
	}
	const q = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE lower(name) IN (SELECT lower(n) FROM unnest(@names::text[]) AS n)`

	tags, err := r.queryTags(ctx, q, pgx.NamedArgs{"names": names})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.FindByNames: %w", err)
	}
	return tags, nil
}

func (r *pgTagRepo) NamedLike(ctx context.Context, fragment string) ([]domain.Tag, error) {
	const q = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE name ILIKE '%' || @pattern || '%'
		ORDER BY name`

	tags, err := r.queryTags(ctx, q, pgx.NamedArgs{"pattern": escapeLike(fragment)})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.NamedLike: %w", err)
	}
	return tags, nil
}

func (r *pgTagRepo) Create(ctx context.Context, name string) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (name)
		VALUES (@name)
		RETURNING ` + tagColumns

	result, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTagRepo) Names(ctx context.Context, sorted bool) ([]string, error) {
	q := `SELECT name FROM tags`
	if sorted {
		q += ` ORDER BY name`
	}

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.Names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.Names: rows: %w", err)
	}
	return names, nil
}

func (r *pgTagRepo) ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	const countQ = `
		SELECT count(*)
		FROM tags
		WHERE name ILIKE @prefix || '%'`
	const pageQ = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE name ILIKE @prefix || '%'
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"prefix": escapeLike(prefix)}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: count: %w", err)
	}

	tags, err := r.queryTags(ctx, pageQ, pgx.NamedArgs{
		"prefix": escapeLike(prefix),
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: %w", err)
	}
	return tags, total, nil
}

func (r *pgTagRepo) All(ctx context.Context) ([]domain.Tag, error) {
	const q = `SELECT ` + tagColumns + ` FROM tags ORDER BY name`

	tags, err := r.queryTags(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.All: %w", err)
	}
	return tags, nil
}

func (r *pgTagRepo) Popular(ctx context.Context, limit int) ([]domain.Tag, error) {
	const q = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE usage_count > 0
		ORDER BY usage_count DESC, name
		LIMIT @limit`

	tags, err := r.queryTags(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.Popular: %w", err)
	}
	return tags, nil
}

// AdjustUsage applies the deltas one tag at a time in ascending id order, so
// concurrent transactions lock tag rows in the same order and cannot deadlock
// on each other.
func (r *pgTagRepo) AdjustUsage(ctx context.Context, deltas map[uuid.UUID]int64) error {
	const q = `
		UPDATE tags
		SET usage_count = usage_count + @delta
		WHERE id = @id`

	ids := make([]uuid.UUID, 0, len(deltas))
	for id, d := range deltas {
		if d != 0 {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	for _, id := range ids {
		tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "delta": deltas[id]})
		if err != nil {
			return fmt.Errorf("repo.TagRepo.AdjustUsage: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("repo.TagRepo.AdjustUsage: tag %s: %w", id, domain.ErrNotFound)
		}
	}
	return nil
}

func (r *pgTagRepo) queryTags(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Tag, error) {
	var qargs []any
	if args != nil {
		qargs = append(qargs, args)
	}
	rows, err := r.db.Query(ctx, q, qargs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tags, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	if err := s.Scan(&id, &t.Name, &t.UsageCount, &t.CreatedAt); err != nil {
		return domain.Tag{}, mapError(err)
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

// escapeLike escapes the LIKE wildcards in s so it matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
