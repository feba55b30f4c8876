package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	concpool "github.com/sourcegraph/conc/pool"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
)

const (
	resultSyncWorkers        = 4
	resultSyncRefreshWorkers = 4
)

// ScheduleProvider is the external schedule/results feed.
type ScheduleProvider interface {
	FetchWeekGames(ctx context.Context, week int) ([]schedule.Game, error)
}

type WeekSyncResult struct {
	Week    int
	Games   int
	Skipped bool
	Err     string
}

type SyncResult struct {
	Weeks          []WeekSyncResult
	GamesUpserted  int
	FailedWeeks    int
	PoolsRefreshed int
}

// ResultSyncService pulls the season schedule and finalized results
// from the provider and refreshes the derived pool aggregates. Week
// fetches fan out on a worker pool; upserts happen on the caller
// goroutine to keep the write path single-threaded.
type ResultSyncService struct {
	provider     ScheduleProvider
	scheduleRepo schedule.Repository
	poolRepo     pool.Repository
	stats        statsInvalidator
	seasonWeeks  int
	logger       *logging.Logger
}

func NewResultSyncService(
	provider ScheduleProvider,
	scheduleRepo schedule.Repository,
	poolRepo pool.Repository,
	stats statsInvalidator,
	seasonWeeks int,
	logger *logging.Logger,
) *ResultSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if seasonWeeks < 1 {
		seasonWeeks = 18
	}
	return &ResultSyncService{
		provider:     provider,
		scheduleRepo: scheduleRepo,
		poolRepo:     poolRepo,
		stats:        stats,
		seasonWeeks:  seasonWeeks,
		logger:       logger,
	}
}

func (s *ResultSyncService) SyncSeason(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.SyncSeason")
	defer span.End()

	if s.provider == nil {
		return SyncResult{}, fmt.Errorf("%w: no schedule provider configured", ErrDependencyUnavailable)
	}

	type weekFetch struct {
		week  int
		games []schedule.Game
		err   error
	}

	results := make(chan weekFetch, s.seasonWeeks)
	var failed atomic.Int32

	workers, err := ants.NewPool(resultSyncWorkers)
	if err != nil {
		return SyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for week := 1; week <= s.seasonWeeks; week++ {
		week := week
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			games, fetchErr := s.provider.FetchWeekGames(ctx, week)
			if fetchErr != nil {
				failed.Add(1)
			}
			results <- weekFetch{week: week, games: games, err: fetchErr}
		}); err != nil {
			wg.Done()
			return SyncResult{}, fmt.Errorf("submit week fetch: %w", err)
		}
	}

	wg.Wait()
	close(results)

	out := SyncResult{}
	for row := range results {
		wr := WeekSyncResult{Week: row.week, Games: len(row.games)}
		if row.err != nil {
			wr.Err = row.err.Error()
			wr.Skipped = true
			s.logger.WarnContext(ctx, "week sync failed", "week", row.week, "error", row.err)
			out.Weeks = append(out.Weeks, wr)
			continue
		}
		if len(row.games) > 0 {
			if upsertErr := s.scheduleRepo.UpsertGames(ctx, row.games); upsertErr != nil {
				wr.Err = upsertErr.Error()
				wr.Skipped = true
				failed.Add(1)
				out.Weeks = append(out.Weeks, wr)
				continue
			}
			out.GamesUpserted += len(row.games)
		}
		out.Weeks = append(out.Weeks, wr)
	}
	sort.Slice(out.Weeks, func(i, j int) bool { return out.Weeks[i].Week < out.Weeks[j].Week })
	out.FailedWeeks = int(failed.Load())

	refreshed, err := s.refreshPools(ctx)
	if err != nil {
		return out, err
	}
	out.PoolsRefreshed = refreshed

	s.logger.InfoContext(ctx, "season sync finished",
		"games_upserted", out.GamesUpserted,
		"failed_weeks", out.FailedWeeks,
		"pools_refreshed", out.PoolsRefreshed,
	)
	return out, nil
}

// refreshPools drops cached aggregates so the next read re-derives
// statuses from the fresh results.
func (s *ResultSyncService) refreshPools(ctx context.Context) (int, error) {
	if s.stats == nil || s.poolRepo == nil {
		return 0, nil
	}

	pools, err := s.poolRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: list pools: %v", ErrDependencyUnavailable, err)
	}

	p := concpool.New().WithMaxGoroutines(resultSyncRefreshWorkers)
	for _, item := range pools {
		item := item
		p.Go(func() {
			s.stats.InvalidatePool(ctx, item.ID)
		})
	}
	p.Wait()

	return len(pools), nil
}
