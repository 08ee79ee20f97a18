package service_test

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/repo"
)

// memStore is an in-memory repo.Store with the same observable semantics as
// the Postgres store: case-insensitive unique tag names, a unique tagging
// tuple, non-negative usage counts, and all-or-nothing transactions.
// Transactions are serialized, which is stricter than Postgres but enough to
// check that the service keeps the invariants.
type memStore struct {
	txMu sync.Mutex // held for the duration of WithinTx
	mu   sync.Mutex // guards the fields below

	tags     map[uuid.UUID]domain.Tag
	taggings []memTagging

	// insertErr, when set, makes TaggingRepo.Insert fail after it has
	// written its rows, so rollback can be observed.
	insertErr error

	tagsOnCalls  int
	insertedRows int
	deletedRows  int

	// insertBatches and deleteBatches record the tag ids passed to each
	// non-empty TaggingRepo.Insert and TaggingRepo.Delete call.
	insertBatches [][]uuid.UUID
	deleteBatches [][]uuid.UUID
}

type memTagging struct {
	tagID    uuid.UUID
	taggable domain.Ref
	context  string
	tagger   domain.Ref
}

func newMemStore() *memStore {
	return &memStore{tags: map[uuid.UUID]domain.Tag{}}
}

var _ repo.Store = (*memStore)(nil)

func (s *memStore) Repos() repo.Repos {
	return repo.Repos{Tags: &memTagRepo{s: s}, Taggings: &memTaggingRepo{s: s}}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(repo.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tags := maps.Clone(s.tags)
	taggings := slices.Clone(s.taggings)
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.tags, s.taggings = tags, taggings
		s.mu.Unlock()
		return err
	}
	return nil
}

// seedTag inserts a tag directly, bypassing the registry.
func (s *memStore) seedTag(name string) domain.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := domain.Tag{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	s.tags[t.ID] = t
	return t
}

// tagNamed returns the tag called name, ignoring case.
func (s *memStore) tagNamed(name string) (domain.Tag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return domain.Tag{}, false
}

// namesOn returns the sorted tag names linked to exactly the given tuple.
func (s *memStore) namesOn(taggable domain.Ref, tagContext string, tagger domain.Ref) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	for _, tg := range s.taggings {
		if tg.taggable == taggable && tg.context == tagContext && tg.tagger == tagger {
			names = append(names, s.tags[tg.tagID].Name)
		}
	}
	slices.Sort(names)
	return names
}

func (s *memStore) taggingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.taggings)
}

// usageMismatches lists every tag whose usage count differs from the number
// of taggings referencing it.
func (s *memStore) usageMismatches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := map[uuid.UUID]int64{}
	for _, tg := range s.taggings {
		refs[tg.tagID]++
	}
	var bad []string
	for id, t := range s.tags {
		if t.UsageCount != refs[id] {
			bad = append(bad, fmt.Sprintf("%s: usage_count=%d taggings=%d", t.Name, t.UsageCount, refs[id]))
		}
	}
	return bad
}

// ---- TagRepo ---------------------------------------------------------------

type memTagRepo struct{ s *memStore }

func (r *memTagRepo) FindByName(_ context.Context, name string, c domain.Comparison) (domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hits []domain.Tag
	for _, t := range r.s.tags {
		switch {
		case strings.EqualFold(t.Name, name):
			return t, nil
		case c == domain.ComparisonLike && strings.Contains(strings.ToLower(t.Name), strings.ToLower(name)):
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return domain.Tag{}, fmt.Errorf("memTagRepo.FindByName: %w", domain.ErrNotFound)
	}
	slices.SortFunc(hits, func(a, b domain.Tag) int { return cmp.Compare(a.Name, b.Name) })
	return hits[0], nil
}

func (r *memTagRepo) FindByNames(_ context.Context, names []string) ([]domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Tag{}
	for _, t := range r.s.tags {
		if slices.ContainsFunc(names, func(n string) bool { return strings.EqualFold(n, t.Name) }) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTagRepo) NamedLike(_ context.Context, fragment string) ([]domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Tag{}
	for _, t := range r.s.tags {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(fragment)) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Tag) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *memTagRepo) Create(_ context.Context, name string) (domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if strings.EqualFold(t.Name, name) {
			return domain.Tag{}, fmt.Errorf("memTagRepo.Create: %w", domain.ErrConflict)
		}
	}
	t := domain.Tag{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	r.s.tags[t.ID] = t
	return t, nil
}

func (r *memTagRepo) Names(_ context.Context, sorted bool) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := []string{}
	for _, t := range r.s.tags {
		names = append(names, t.Name)
	}
	if sorted {
		slices.Sort(names)
	}
	return names, nil
}

func (r *memTagRepo) ListPaged(_ context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []domain.Tag
	for _, t := range r.s.tags {
		if strings.HasPrefix(strings.ToLower(t.Name), strings.ToLower(prefix)) {
			all = append(all, t)
		}
	}
	slices.SortFunc(all, func(a, b domain.Tag) int { return cmp.Compare(a.Name, b.Name) })
	lo := min(p.Offset(), len(all))
	hi := min(lo+p.Limit, len(all))
	return all[lo:hi], int64(len(all)), nil
}

func (r *memTagRepo) All(_ context.Context) ([]domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := slices.Collect(maps.Values(r.s.tags))
	slices.SortFunc(out, func(a, b domain.Tag) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *memTagRepo) Popular(_ context.Context, limit int) ([]domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Tag
	for _, t := range r.s.tags {
		if t.UsageCount > 0 {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Tag) int {
		return cmp.Or(cmp.Compare(b.UsageCount, a.UsageCount), cmp.Compare(a.Name, b.Name))
	})
	return out[:min(limit, len(out))], nil
}

func (r *memTagRepo) AdjustUsage(_ context.Context, deltas map[uuid.UUID]int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, d := range deltas {
		t, ok := r.s.tags[id]
		if !ok {
			return fmt.Errorf("memTagRepo.AdjustUsage: %w", domain.ErrNotFound)
		}
		t.UsageCount += d
		if t.UsageCount < 0 {
			return fmt.Errorf("memTagRepo.AdjustUsage: %s would go negative", t.Name)
		}
		r.s.tags[id] = t
	}
	return nil
}

// ---- TaggingRepo -----------------------------------------------------------

type memTaggingRepo struct{ s *memStore }

func (r *memTaggingRepo) TagsOn(_ context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tagsOnCalls++
	out := []domain.Tag{}
	for _, tg := range r.s.taggings {
		if tg.taggable == taggable && tg.context == tagContext && tg.tagger == tagger {
			out = append(out, r.s.tags[tg.tagID])
		}
	}
	slices.SortFunc(out, func(a, b domain.Tag) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *memTaggingRepo) TagNamesInContext(_ context.Context, taggable domain.Ref, tagContext string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := []string{}
	for _, tg := range r.s.taggings {
		if tg.taggable == taggable && tg.context == tagContext {
			if n := r.s.tags[tg.tagID].Name; !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	return names, nil
}

func (r *memTaggingRepo) Insert(_ context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, tagIDs []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(tagIDs) > 0 {
		r.s.insertBatches = append(r.s.insertBatches, slices.Clone(tagIDs))
	}
	var inserted []uuid.UUID
	for _, id := range tagIDs {
		row := memTagging{tagID: id, taggable: taggable, context: tagContext, tagger: tagger}
		if slices.Contains(r.s.taggings, row) {
			continue
		}
		r.s.taggings = append(r.s.taggings, row)
		inserted = append(inserted, id)
	}
	r.s.insertedRows += len(inserted)
	if r.s.insertErr != nil {
		return nil, r.s.insertErr
	}
	return inserted, nil
}

func (r *memTaggingRepo) Delete(_ context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, tagIDs []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(tagIDs) > 0 {
		r.s.deleteBatches = append(r.s.deleteBatches, slices.Clone(tagIDs))
	}
	var deleted []uuid.UUID
	r.s.taggings = slices.DeleteFunc(r.s.taggings, func(tg memTagging) bool {
		hit := tg.taggable == taggable && tg.context == tagContext && tg.tagger == tagger && slices.Contains(tagIDs, tg.tagID)
		if hit {
			deleted = append(deleted, tg.tagID)
		}
		return hit
	})
	r.s.deletedRows += len(deleted)
	return deleted, nil
}

func (r *memTaggingRepo) DeleteAllFor(_ context.Context, taggable domain.Ref) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var deleted []uuid.UUID
	r.s.taggings = slices.DeleteFunc(r.s.taggings, func(tg memTagging) bool {
		if tg.taggable == taggable {
			deleted = append(deleted, tg.tagID)
			return true
		}
		return false
	})
	r.s.deletedRows += len(deleted)
	return deleted, nil
}

func (r *memTaggingRepo) Related(_ context.Context, q repo.RelatedQuery) ([]domain.Related, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shared := map[string]map[uuid.UUID]bool{}
	for _, tg := range r.s.taggings {
		switch {
		case tg.taggable.Type != q.TargetType,
			q.ExcludeID != "" && tg.taggable.ID == q.ExcludeID,
			q.ResultContext != "" && tg.context != q.ResultContext,
			!slices.Contains(q.Names, r.s.tags[tg.tagID].Name):
			continue
		}
		if shared[tg.taggable.ID] == nil {
			shared[tg.taggable.ID] = map[uuid.UUID]bool{}
		}
		shared[tg.taggable.ID][tg.tagID] = true
	}
	out := []domain.Related{}
	for id, tags := range shared {
		out = append(out, domain.Related{Ref: domain.Ref{Type: q.TargetType, ID: id}, Count: int64(len(tags))})
	}
	slices.SortFunc(out, func(a, b domain.Related) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Ref.ID, b.Ref.ID))
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}
