package repo_test

import (
	"context"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/repo"
	"github.com/pkordes/tagengine/testutil"
)

// newTestStore opens a transaction and returns a Store bound to it. Every
// write the test makes, including those inside WithinTx (a savepoint), is
// rolled back when the test finishes.
func newTestStore(t *testing.T) repo.Store {
	t.Helper()
	return repo.NewStore(testutil.NewTx(t, testutil.NewPool(t)))
}

func mustCreateTag(t *testing.T, tags repo.TagRepo, name string) domain.Tag {
	t.Helper()
	tag, err := tags.Create(context.Background(), name)
	require.NoError(t, err, "create tag %q", name)
	return tag
}

// ---- Create / FindByName ---------------------------------------------------

func TestTagRepo_Create(t *testing.T) {
	tags := newTestStore(t).Repos().Tags

	got, err := tags.Create(context.Background(), "PostgreSQL")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "PostgreSQL", got.Name)
	assert.Zero(t, got.UsageCount)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestTagRepo_Create_CaseInsensitiveConflict(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	mustCreateTag(t, tags, "Ruby")

	_, err := tags.Create(context.Background(), "RUBY")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTagRepo_Create_RejectsBlankName(t *testing.T) {
	tags := newTestStore(t).Repos().Tags

	_, err := tags.Create(context.Background(), "   ")

	assert.Error(t, err)
}

func TestTagRepo_FindByName_Exact(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	want := mustCreateTag(t, tags, "Ruby")
	mustCreateTag(t, tags, "Ruby on Rails")

	got, err := tags.FindByName(context.Background(), "rUBY", domain.ComparisonExact)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTagRepo_FindByName_ExactMiss(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	mustCreateTag(t, tags, "golang")

	_, err := tags.FindByName(context.Background(), "go", domain.ComparisonExact)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagRepo_FindByName_LikePrefersExact(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	mustCreateTag(t, tags, "algol")
	exact := mustCreateTag(t, tags, "Go")

	got, err := tags.FindByName(context.Background(), "go", domain.ComparisonLike)
	require.NoError(t, err)
	assert.Equal(t, exact.ID, got.ID)

	got, err = tags.FindByName(context.Background(), "LGO", domain.ComparisonLike)
	require.NoError(t, err)
	assert.Equal(t, "algol", got.Name)
}

func TestTagRepo_FindByName_LikeEscapesWildcards(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	mustCreateTag(t, tags, "snake_case")

	_, err := tags.FindByName(context.Background(), "e%c", domain.ComparisonLike)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := tags.FindByName(context.Background(), "e_c", domain.ComparisonLike)
	require.NoError(t, err)
	assert.Equal(t, "snake_case", got.Name)
}

func TestTagRepo_FindByNames(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	mustCreateTag(t, tags, "Ruby")
	mustCreateTag(t, tags, "rails")
	mustCreateTag(t, tags, "go")

	got, err := tags.FindByNames(context.Background(), []string{"ruby", "RAILS", "rust"})

	require.NoError(t, err)
	names := []string{}
	for _, tag := range got {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"Ruby", "rails"}, names)
}

// ---- listings ----------------------------------------------------------------

func TestTagRepo_NamesAndAll(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	ctx := context.Background()
	mustCreateTag(t, tags, "zeta-names")
	mustCreateTag(t, tags, "alpha-names")

	names, err := tags.Names(ctx, true)
	require.NoError(t, err)
	assert.Subset(t, names, []string{"alpha-names", "zeta-names"})
	assert.Less(t, slices.Index(names, "alpha-names"), slices.Index(names, "zeta-names"))

	all, err := tags.All(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 2)
}

func TestTagRepo_NamedLike(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	mustCreateTag(t, tags, "JavaScript")
	mustCreateTag(t, tags, "TypeScript")
	mustCreateTag(t, tags, "Python")

	got, err := tags.NamedLike(context.Background(), "script")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "JavaScript", got[0].Name)
	assert.Equal(t, "TypeScript", got[1].Name)
}

func TestTagRepo_ListPaged(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	for _, n := range []string{"pg-a", "pg-b", "pg-c", "other"} {
		mustCreateTag(t, tags, n)
	}

	page, total, err := tags.ListPaged(context.Background(), "PG-", domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "pg-c", page[0].Name)
}

// ---- usage counters ----------------------------------------------------------

func TestTagRepo_AdjustUsageAndPopular(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	ctx := context.Background()
	ruby := mustCreateTag(t, tags, "pop-ruby")
	golang := mustCreateTag(t, tags, "pop-go")
	mustCreateTag(t, tags, "pop-unused")

	require.NoError(t, tags.AdjustUsage(ctx, map[uuid.UUID]int64{ruby.ID: 3, golang.ID: 1}))
	require.NoError(t, tags.AdjustUsage(ctx, map[uuid.UUID]int64{ruby.ID: -1, golang.ID: 0}))

	got, err := tags.FindByName(ctx, "pop-ruby", domain.ComparisonExact)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UsageCount)

	popular, err := tags.Popular(ctx, 100)
	require.NoError(t, err)
	var names []string
	for _, tag := range popular {
		names = append(names, tag.Name)
	}
	assert.Contains(t, names, "pop-ruby")
	assert.NotContains(t, names, "pop-unused", "unused tags are not popular")
	assert.Less(t, slices.Index(names, "pop-ruby"), slices.Index(names, "pop-go"))
}

func TestTagRepo_AdjustUsage_NeverNegative(t *testing.T) {
	tags := newTestStore(t).Repos().Tags
	tag := mustCreateTag(t, tags, "neg")

	err := tags.AdjustUsage(context.Background(), map[uuid.UUID]int64{tag.ID: -1})

	assert.Error(t, err)
}

func TestTagRepo_AdjustUsage_UnknownTag(t *testing.T) {
	tags := newTestStore(t).Repos().Tags

	err := tags.AdjustUsage(context.Background(), map[uuid.UUID]int64{uuid.New(): 1})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
