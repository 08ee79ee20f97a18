package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/metrics"
	"github.com/pkordes/tagengine/internal/repo"
)

// TagRegistryConfig tunes a TagRegistry.
type TagRegistryConfig struct {
	// Comparison is the global name-matching mode for FindOrCreate.
	// Defaults to domain.ComparisonExact.
	Comparison domain.Comparison

	// PopularTTL is how long Popular results are served from memory.
	// Zero disables the cache.
	PopularTTL time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// TagRegistry owns canonical tags: it finds them by name, creates them on
// first use, and answers name and popularity queries.
type TagRegistry struct {
	tags    repo.TagRepo
	cmp     domain.Comparison
	log     *slog.Logger
	popular *gocache.Cache
}

// NewTagRegistry constructs a TagRegistry backed by the provided TagRepo.
func NewTagRegistry(tags repo.TagRepo, cfg TagRegistryConfig) *TagRegistry {
	r := &TagRegistry{
		tags: tags,
		cmp:  cfg.Comparison,
		log:  cfg.Logger,
	}
	if !r.cmp.Valid() {
		r.cmp = domain.ComparisonExact
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	if cfg.PopularTTL > 0 {
		r.popular = gocache.New(cfg.PopularTTL, 2*cfg.PopularTTL)
	}
	return r
}

// FindOrCreate returns the tag matching name under the configured comparison,
// creating it with a zero usage count when nothing matches.
// Returns domain.ErrValidation if name is blank.
func (r *TagRegistry) FindOrCreate(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, fmt.Errorf("service.TagRegistry.FindOrCreate: %w: name is required", domain.ErrValidation)
	}

	tag, err := r.tags.FindByName(ctx, name, r.cmp)
	switch {
	case err == nil:
		return tag, nil
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Tag{}, fmt.Errorf("service.TagRegistry.FindOrCreate: %w", err)
	}

	tag, err = r.create(ctx, name)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagRegistry.FindOrCreate: %w", err)
	}
	return tag, nil
}

// FindOrCreateMany resolves names to canonical tags with a single lookup,
// creating exactly one tag per name that does not exist yet. Names are
// deduplicated case-insensitively and blank names are ignored. Tags are
// returned in the order their names first appear.
func (r *TagRegistry) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Tag, error) {
	wanted := domain.NewTagList(names...)
	if wanted.Len() == 0 {
		return []domain.Tag{}, nil
	}

	existing, err := r.tags.FindByNames(ctx, wanted.Names())
	if err != nil {
		return nil, fmt.Errorf("service.TagRegistry.FindOrCreateMany: %w", err)
	}
	byKey := make(map[string]domain.Tag, len(existing))
	for _, t := range existing {
		byKey[domain.FoldName(t.Name)] = t
	}

	tags := make([]domain.Tag, 0, wanted.Len())
	for _, name := range wanted.Names() {
		if t, ok := byKey[domain.FoldName(name)]; ok {
			tags = append(tags, t)
			continue
		}
		t, err := r.create(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("service.TagRegistry.FindOrCreateMany: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// Names returns every tag name, ordered by name when sorted is true.
func (r *TagRegistry) Names(ctx context.Context, sorted bool) ([]string, error) {
	names, err := r.tags.Names(ctx, sorted)
	if err != nil {
		return nil, fmt.Errorf("service.TagRegistry.Names: %w", err)
	}
	if names == nil {
		return []string{}, nil
	}
	return names, nil
}

// NamedLike returns the tags whose name contains fragment, ignoring case.
func (r *TagRegistry) NamedLike(ctx context.Context, fragment string) ([]domain.Tag, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, fmt.Errorf("service.TagRegistry.NamedLike: %w: fragment is required", domain.ErrValidation)
	}
	tags, err := r.tags.NamedLike(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("service.TagRegistry.NamedLike: %w", err)
	}
	return tags, nil
}

// ListPaged returns one page of tags whose name starts with prefix, plus the
// total number of matches. Always returns a non-nil slice.
func (r *TagRegistry) ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	tags, total, err := r.tags.ListPaged(ctx, strings.TrimSpace(prefix), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TagRegistry.ListPaged: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, total, nil
}

// All returns every tag with its usage count, ordered by name. Always
// returns a non-nil slice.
func (r *TagRegistry) All(ctx context.Context) ([]domain.Tag, error) {
	tags, err := r.tags.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TagRegistry.All: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

// Popular returns up to limit tags in use, most used first. Results may be
// up to PopularTTL old.
func (r *TagRegistry) Popular(ctx context.Context, limit int) ([]domain.Tag, error) {
	if limit < 1 {
		return nil, fmt.Errorf("service.TagRegistry.Popular: %w: limit must be positive", domain.ErrValidation)
	}
	key := strconv.Itoa(limit)
	if r.popular != nil {
		if cached, ok := r.popular.Get(key); ok {
			if tags, ok := cached.([]domain.Tag); ok {
				return slices.Clone(tags), nil
			}
		}
	}

	tags, err := r.tags.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service.TagRegistry.Popular: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	if r.popular != nil {
		r.popular.Set(key, slices.Clone(tags), gocache.DefaultExpiration)
	}
	return tags, nil
}

// create inserts name as a new tag. Losing a creation race to a concurrent
// caller is not an error: the winner's row is looked up and returned.
func (r *TagRegistry) create(ctx context.Context, name string) (domain.Tag, error) {
	tag, err := r.tags.Create(ctx, name)
	if err == nil {
		metrics.TagsCreated.Inc()
		return tag, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return domain.Tag{}, err
	}

	metrics.ConflictsResolved.WithLabelValues("tag").Inc()
	r.log.DebugContext(ctx, "tag created concurrently, using existing row", "name", name)
	tag, err = r.tags.FindByName(ctx, name, domain.ComparisonExact)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("lookup after conflict: %w", err)
	}
	return tag, nil
}
