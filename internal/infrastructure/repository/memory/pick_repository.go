package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/agsmith/run-my-pool/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) GetByEntryAndWeek(_ context.Context, entryID string, week int) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.EntryID == entryID && item.Week == week {
			return item, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *PickRepository) ListByEntry(_ context.Context, entryID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.items {
		if item.EntryID == entryID {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByEntries(_ context.Context, entryIDs []string) (map[string][]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		wanted[id] = struct{}{}
	}

	out := make(map[string][]pick.Pick, len(entryIDs))
	for _, item := range r.items {
		if _, ok := wanted[item.EntryID]; ok {
			out[item.EntryID] = append(out[item.EntryID], item)
		}
	}
	for id := range out {
		sortPicks(out[id])
	}
	return out, nil
}

func (r *PickRepository) Upsert(_ context.Context, item pick.Pick) (pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.EntryID == item.EntryID && existing.Week == item.Week && id != item.ID {
			delete(r.items, id)
		}
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *PickRepository) DeleteByEntryAndWeek(_ context.Context, entryID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.EntryID == entryID && item.Week == week {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *PickRepository) DeleteByEntry(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.EntryID == entryID {
			delete(r.items, id)
		}
	}
	return nil
}

func sortPicks(items []pick.Pick) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Week < items[j].Week
	})
}
