package repo

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// RelatedQuery composes the aggregate join behind "related entities" and
// "matching contexts" lookups: taggables of TargetType ranked by how many
// distinct tags named in Names they carry.
type RelatedQuery struct {
	// TargetType restricts results to taggables of this type.
	TargetType string

	// Names are the source entity's tag names; a target shares a tag when it
	// is linked to a tag with one of these exact names.
	Names []string

	// ExcludeID drops the taggable with this id from the results. Set it to
	// the source id when the source is itself a TargetType.
	ExcludeID string

	// ResultContext, when set, only counts target taggings in that context.
	ResultContext string

	// Limit caps the number of rows; zero means no cap.
	Limit int
}

// Build returns the SQL and its named arguments. Rows are
// (taggable_id, count), ordered by count descending; ties are broken by
// taggable_id so results are stable across runs.
func (q RelatedQuery) Build() (string, pgx.NamedArgs) {
	var b strings.Builder
	args := pgx.NamedArgs{
		"target_type": q.TargetType,
		"names":       q.Names,
	}

	b.WriteString(`
		SELECT tg.taggable_id, COUNT(DISTINCT t.id) AS count
		FROM taggings tg
		JOIN tags t ON t.id = tg.tag_id
		WHERE tg.taggable_type = @target_type
		  AND t.name = ANY(@names::text[])`)

	if q.ExcludeID != "" {
		b.WriteString(`
		  AND tg.taggable_id <> @exclude_id`)
		args["exclude_id"] = q.ExcludeID
	}
	if q.ResultContext != "" {
		b.WriteString(`
		  AND tg.context = @result_context`)
		args["result_context"] = q.ResultContext
	}

	b.WriteString(`
		GROUP BY tg.taggable_id
		ORDER BY count DESC, tg.taggable_id`)

	if q.Limit > 0 {
		b.WriteString(`
		LIMIT @limit`)
		args["limit"] = q.Limit
	}
	return b.String(), args
}
