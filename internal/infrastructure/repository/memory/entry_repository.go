package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
)

type EntryRepository struct {
	mu    sync.RWMutex
	items map[string]entry.Entry
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{items: make(map[string]entry.Entry)}
}

func (r *EntryRepository) Create(_ context.Context, item entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("entry %s already exists", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *EntryRepository) GetByID(_ context.Context, id string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *EntryRepository) ListByPool(_ context.Context, poolID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0)
	for _, item := range r.items {
		if item.PoolID == poolID {
			out = append(out, item)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *EntryRepository) ListByUserAndPool(_ context.Context, userID, poolID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0)
	for _, item := range r.items {
		if item.UserID == userID && item.PoolID == poolID {
			out = append(out, item)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *EntryRepository) ListByUser(_ context.Context, userID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *EntryRepository) CountByPool(_ context.Context, poolID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.PoolID == poolID {
			count++
		}
	}
	return count, nil
}

func (r *EntryRepository) Update(_ context.Context, item entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("entry %s not found", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *EntryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func sortEntries(items []entry.Entry) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
