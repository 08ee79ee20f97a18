package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tagengine/internal/domain"
)

// TaggingRepo defines the persistence operations for the taggings join table.
// A zero tagger Ref is stored as empty strings, so "no tagger" takes part in
// the uniqueness constraint like any other tagger.
type TaggingRepo interface {
	// TagsOn returns the tags linked to taggable in context by exactly tagger,
	// ordered by name.
	TagsOn(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error)

	// TagNamesInContext returns the distinct names of all tags linked to
	// taggable in context by any tagger, ordered by name.
	TagNamesInContext(ctx context.Context, taggable domain.Ref, tagContext string) ([]string, error)

	// Insert links every tag in tagIDs to (taggable, context, tagger) in one
	// statement. Tuples that already exist are skipped. Returns the tag ids of
	// the rows actually inserted.
	Insert(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, tagIDs []uuid.UUID) ([]uuid.UUID, error)

	// Delete removes the links between (taggable, context, tagger) and the
	// tags in tagIDs in one statement. Returns the tag ids of the rows
	// actually deleted.
	Delete(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, tagIDs []uuid.UUID) ([]uuid.UUID, error)

	// DeleteAllFor removes every tagging of taggable, in all contexts and by
	// all taggers. Returns one tag id per deleted row.
	DeleteAllFor(ctx context.Context, taggable domain.Ref) ([]uuid.UUID, error)

	// Related runs a relation query built by RelatedQuery.
	Related(ctx context.Context, q RelatedQuery) ([]domain.Related, error)
}

// pgTaggingRepo is the Postgres implementation of TaggingRepo.
type pgTaggingRepo struct {
	db db
}

// NewTaggingRepo constructs a TaggingRepo backed by the provided db connection.
func NewTaggingRepo(db db) TaggingRepo {
	return &pgTaggingRepo{db: db}
}

func (r *pgTaggingRepo) TagsOn(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error) {
	const q = `
		SELECT t.id, t.name, t.usage_count, t.created_at
		FROM tags t
		JOIN taggings tg ON tg.tag_id = t.id
		WHERE tg.taggable_type = @taggable_type
		  AND tg.taggable_id   = @taggable_id
		  AND tg.context       = @context
		  AND tg.tagger_type   = @tagger_type
		  AND tg.tagger_id     = @tagger_id
		ORDER BY t.name`

	args := tupleArgs(taggable, tagContext, tagger)
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.TagsOn: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TaggingRepo.TagsOn: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.TagsOn: rows: %w", err)
	}
	return tags, nil
}

func (r *pgTaggingRepo) TagNamesInContext(ctx context.Context, taggable domain.Ref, tagContext string) ([]string, error) {
	const q = `
		SELECT DISTINCT t.name
		FROM tags t
		JOIN taggings tg ON tg.tag_id = t.id
		WHERE tg.taggable_type = @taggable_type
		  AND tg.taggable_id   = @taggable_id
		  AND tg.context       = @context
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"taggable_type": taggable.Type,
		"taggable_id":   taggable.ID,
		"context":       tagContext,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.TagNamesInContext: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.TagNamesInContext: rows: %w", err)
	}
	return names, nil
}

// Insert relies on ON CONFLICT DO NOTHING against the tuple's unique index:
// a row inserted concurrently by another reconcile is simply not returned,
// which lets the caller count only the rows it created. Rows are inserted in
// tag id order whatever the order of tagIDs.
func (r *pgTaggingRepo) Insert(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, tagIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	const q = `
		INSERT INTO taggings (tag_id, taggable_type, taggable_id, context, tagger_type, tagger_id)
		SELECT tag_id, @taggable_type, @taggable_id, @context, @tagger_type, @tagger_id
		FROM unnest(@tag_ids::uuid[]) AS tag_id
		ORDER BY tag_id
		ON CONFLICT (tag_id, taggable_type, taggable_id, context, tagger_type, tagger_id) DO NOTHING
		RETURNING tag_id`

	args := tupleArgs(taggable, tagContext, tagger)
	args["tag_ids"] = uuidStrings(tagIDs)

	ids, err := r.queryIDs(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.Insert: %w", err)
	}
	return ids, nil
}

func (r *pgTaggingRepo) Delete(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, tagIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	const q = `
		DELETE FROM taggings
		WHERE taggable_type = @taggable_type
		  AND taggable_id   = @taggable_id
		  AND context       = @context
		  AND tagger_type   = @tagger_type
		  AND tagger_id     = @tagger_id
		  AND tag_id = ANY(@tag_ids::uuid[])
		RETURNING tag_id`

	args := tupleArgs(taggable, tagContext, tagger)
	args["tag_ids"] = uuidStrings(tagIDs)

	ids, err := r.queryIDs(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.Delete: %w", err)
	}
	return ids, nil
}

func (r *pgTaggingRepo) DeleteAllFor(ctx context.Context, taggable domain.Ref) ([]uuid.UUID, error) {
	const q = `
		DELETE FROM taggings
		WHERE taggable_type = @taggable_type
		  AND taggable_id   = @taggable_id
		RETURNING tag_id`

	ids, err := r.queryIDs(ctx, q, pgx.NamedArgs{
		"taggable_type": taggable.Type,
		"taggable_id":   taggable.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.DeleteAllFor: %w", err)
	}
	return ids, nil
}

func (r *pgTaggingRepo) Related(ctx context.Context, rq RelatedQuery) ([]domain.Related, error) {
	q, args := rq.Build()

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.Related: %w", err)
	}
	defer rows.Close()

	related := []domain.Related{}
	for rows.Next() {
		item := domain.Related{Ref: domain.Ref{Type: rq.TargetType}}
		if err := rows.Scan(&item.Ref.ID, &item.Count); err != nil {
			return nil, fmt.Errorf("repo.TaggingRepo.Related: scan: %w", err)
		}
		related = append(related, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TaggingRepo.Related: rows: %w", err)
	}
	return related, nil
}

func (r *pgTaggingRepo) queryIDs(ctx context.Context, q string, args pgx.NamedArgs) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", mapError(err))
	}
	return ids, nil
}

// tupleArgs binds the (taggable, context, tagger) part of the uniqueness tuple.
func tupleArgs(taggable domain.Ref, tagContext string, tagger domain.Ref) pgx.NamedArgs {
	return pgx.NamedArgs{
		"taggable_type": taggable.Type,
		"taggable_id":   taggable.ID,
		"context":       tagContext,
		"tagger_type":   tagger.Type,
		"tagger_id":     tagger.ID,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
