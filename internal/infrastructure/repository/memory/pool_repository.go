package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
)

type PoolRepository struct {
	mu     sync.RWMutex
	items  map[string]pool.Pool
	admins map[string]map[string]struct{}
}

func NewPoolRepository() *PoolRepository {
	return &PoolRepository{
		items:  make(map[string]pool.Pool),
		admins: make(map[string]map[string]struct{}),
	}
}

func (r *PoolRepository) Create(_ context.Context, item pool.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("pool %s already exists", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *PoolRepository) GetByID(_ context.Context, id string) (pool.Pool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *PoolRepository) ListPublic(_ context.Context) ([]pool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pool.Pool, 0, len(r.items))
	for _, item := range r.items {
		if item.Visibility == pool.VisibilityPublic {
			out = append(out, item)
		}
	}
	sortPools(out)
	return out, nil
}

func (r *PoolRepository) ListByOwner(_ context.Context, ownerID string) ([]pool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pool.Pool, 0)
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	sortPools(out)
	return out, nil
}

func (r *PoolRepository) List(_ context.Context) ([]pool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pool.Pool, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortPools(out)
	return out, nil
}

func (r *PoolRepository) Update(_ context.Context, item pool.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("pool %s not found", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *PoolRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	delete(r.admins, id)
	return nil
}

func (r *PoolRepository) AddAdmin(_ context.Context, poolID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.admins[poolID] == nil {
		r.admins[poolID] = make(map[string]struct{})
	}
	r.admins[poolID][userID] = struct{}{}
	return nil
}

func (r *PoolRepository) IsAdmin(_ context.Context, poolID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.admins[poolID][userID]
	return ok, nil
}

func sortPools(items []pool.Pool) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
