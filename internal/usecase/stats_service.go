package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/platform/cache"
)

type SurvivorStats struct {
	PoolID               string
	TotalEntries         int
	Survivors            int
	Eliminated           int
	SurvivorsPercentage  float64
	EliminatedPercentage float64
}

type TeamPickCount struct {
	Team  string
	Count int
}

// WeekDistribution splits a pool's entries for one week into per-team
// pick counts plus two no-pick buckets: unlocked before the week
// deadline, noSelection after it.
type WeekDistribution struct {
	PoolID       string
	Week         int
	TotalEntries int
	Picks        []TeamPickCount
	Unlocked     int
	NoSelection  int
}

// StatsService is a read-only projection over pools, entries, picks and
// game results. It performs no writes; results are cached with a TTL
// and dropped on pick writes.
type StatsService struct {
	poolRepo     pool.Repository
	entryRepo    entry.Repository
	pickRepo     pick.Repository
	scheduleRepo schedule.Repository
	seasonWeeks  int
	store        *cache.Store
	now          func() time.Time
}

func NewStatsService(
	poolRepo pool.Repository,
	entryRepo entry.Repository,
	pickRepo pick.Repository,
	scheduleRepo schedule.Repository,
	seasonWeeks int,
	store *cache.Store,
) *StatsService {
	if seasonWeeks < 1 {
		seasonWeeks = 18
	}
	return &StatsService{
		poolRepo:     poolRepo,
		entryRepo:    entryRepo,
		pickRepo:     pickRepo,
		scheduleRepo: scheduleRepo,
		seasonWeeks:  seasonWeeks,
		store:        store,
		now:          time.Now,
	}
}

func (s *StatsService) SurvivorStats(ctx context.Context, poolID string) (SurvivorStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.SurvivorStats")
	defer span.End()

	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return SurvivorStats{}, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		return s.computeSurvivorStats(ctx, poolID)
	}

	value, err := s.cached(ctx, statsKey(poolID, "survivor"), load)
	if err != nil {
		return SurvivorStats{}, err
	}
	return value.(SurvivorStats), nil
}

func (s *StatsService) WeeklyDistribution(ctx context.Context, poolID string, week int) (WeekDistribution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.WeeklyDistribution")
	defer span.End()

	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return WeekDistribution{}, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}
	if week < 1 || week > s.seasonWeeks {
		return WeekDistribution{}, fmt.Errorf("%w: week %d not in 1..%d", ErrInvalidWeek, week, s.seasonWeeks)
	}

	load := func(ctx context.Context) (any, error) {
		return s.computeWeeklyDistribution(ctx, poolID, week)
	}

	value, err := s.cached(ctx, statsKey(poolID, "week:"+strconv.Itoa(week)), load)
	if err != nil {
		return WeekDistribution{}, err
	}
	return value.(WeekDistribution), nil
}

// EntryVerdict derives one entry's current status under its pool rules.
func (s *StatsService) EntryVerdict(ctx context.Context, entryID string) (EntryVerdict, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.EntryVerdict")
	defer span.End()

	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return EntryVerdict{}, fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	e, found, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return EntryVerdict{}, fmt.Errorf("%w: get entry: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return EntryVerdict{}, fmt.Errorf("%w: entry=%s", ErrNotFound, entryID)
	}

	p, found, err := s.poolRepo.GetByID(ctx, e.PoolID)
	if err != nil {
		return EntryVerdict{}, fmt.Errorf("%w: get pool: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return EntryVerdict{}, fmt.Errorf("%w: pool=%s", ErrNotFound, e.PoolID)
	}

	picks, err := s.pickRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return EntryVerdict{}, fmt.Errorf("%w: list picks: %v", ErrDependencyUnavailable, err)
	}

	games, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return EntryVerdict{}, fmt.Errorf("%w: list games: %v", ErrDependencyUnavailable, err)
	}

	return EvaluateEntry(picks, GroupGamesByWeek(games), p.Rules, s.now().UTC()), nil
}

// InvalidatePool drops every cached aggregate for the pool.
func (s *StatsService) InvalidatePool(ctx context.Context, poolID string) {
	if s.store == nil || poolID == "" {
		return
	}
	s.store.DeletePrefix(ctx, statsKey(poolID, ""))
}

func (s *StatsService) computeSurvivorStats(ctx context.Context, poolID string) (SurvivorStats, error) {
	p, entries, picksByEntry, gamesByWeek, err := s.poolSnapshot(ctx, poolID)
	if err != nil {
		return SurvivorStats{}, err
	}

	stats := SurvivorStats{PoolID: poolID, TotalEntries: len(entries)}
	asOf := s.now().UTC()
	for _, e := range entries {
		verdict := EvaluateEntry(picksByEntry[e.ID], gamesByWeek, p.Rules, asOf)
		if verdict.Eliminated() {
			stats.Eliminated++
		} else {
			stats.Survivors++
		}
	}

	stats.SurvivorsPercentage = percentage(stats.Survivors, stats.TotalEntries)
	stats.EliminatedPercentage = percentage(stats.Eliminated, stats.TotalEntries)
	return stats, nil
}

func (s *StatsService) computeWeeklyDistribution(ctx context.Context, poolID string, week int) (WeekDistribution, error) {
	_, entries, picksByEntry, gamesByWeek, err := s.poolSnapshot(ctx, poolID)
	if err != nil {
		return WeekDistribution{}, err
	}

	dist := WeekDistribution{PoolID: poolID, Week: week, TotalEntries: len(entries)}

	deadline := schedule.WeekDeadline(gamesByWeek[week])
	deadlinePassed := !deadline.IsZero() && !s.now().UTC().Before(deadline)

	counts := make(map[string]int)
	for _, e := range entries {
		var weekPick *pick.Pick
		for i, p := range picksByEntry[e.ID] {
			if p.Week == week {
				weekPick = &picksByEntry[e.ID][i]
				break
			}
		}
		if weekPick == nil {
			if deadlinePassed {
				dist.NoSelection++
			} else {
				dist.Unlocked++
			}
			continue
		}
		counts[weekPick.Team]++
	}

	dist.Picks = make([]TeamPickCount, 0, len(counts))
	for code, n := range counts {
		dist.Picks = append(dist.Picks, TeamPickCount{Team: code, Count: n})
	}
	sort.Slice(dist.Picks, func(i, j int) bool {
		if dist.Picks[i].Count != dist.Picks[j].Count {
			return dist.Picks[i].Count > dist.Picks[j].Count
		}
		return dist.Picks[i].Team < dist.Picks[j].Team
	})

	return dist, nil
}

func (s *StatsService) poolSnapshot(ctx context.Context, poolID string) (pool.Pool, []entry.Entry, map[string][]pick.Pick, map[int][]schedule.Game, error) {
	p, found, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return pool.Pool{}, nil, nil, nil, fmt.Errorf("%w: get pool: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return pool.Pool{}, nil, nil, nil, fmt.Errorf("%w: pool=%s", ErrNotFound, poolID)
	}

	entries, err := s.entryRepo.ListByPool(ctx, poolID)
	if err != nil {
		return pool.Pool{}, nil, nil, nil, fmt.Errorf("%w: list entries: %v", ErrDependencyUnavailable, err)
	}

	entryIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		entryIDs = append(entryIDs, e.ID)
	}
	picksByEntry, err := s.pickRepo.ListByEntries(ctx, entryIDs)
	if err != nil {
		return pool.Pool{}, nil, nil, nil, fmt.Errorf("%w: list picks: %v", ErrDependencyUnavailable, err)
	}

	games, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return pool.Pool{}, nil, nil, nil, fmt.Errorf("%w: list games: %v", ErrDependencyUnavailable, err)
	}

	return p, entries, picksByEntry, GroupGamesByWeek(games), nil
}

func (s *StatsService) cached(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if s.store == nil {
		return load(ctx)
	}
	return s.store.GetOrLoad(ctx, key, load)
}

func statsKey(poolID, suffix string) string {
	return "stats:" + poolID + ":" + suffix
}

// percentage is count/total*100 rounded to one decimal, 0 for an empty
// pool rather than NaN.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
