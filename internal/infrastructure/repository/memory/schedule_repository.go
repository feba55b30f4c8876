package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu    sync.RWMutex
	items map[string]schedule.Game
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{items: make(map[string]schedule.Game)}
}

func (r *ScheduleRepository) GetGame(_ context.Context, week int, teamCode string) (schedule.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Week == week && item.Involves(teamCode) {
			return item, true, nil
		}
	}
	return schedule.Game{}, false, nil
}

func (r *ScheduleRepository) ListByWeek(_ context.Context, week int) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Game, 0)
	for _, item := range r.items {
		if item.Week == week {
			out = append(out, item)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *ScheduleRepository) ListAll(_ context.Context) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Game, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortGames(out)
	return out, nil
}

func (r *ScheduleRepository) UpsertGames(_ context.Context, games []schedule.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, game := range games {
		r.items[game.ID] = game
	}
	return nil
}

func sortGames(items []schedule.Game) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].HomeTeam < items[j].HomeTeam
	})
}
