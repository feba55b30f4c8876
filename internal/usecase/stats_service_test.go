package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/infrastructure/repository/memory"
	"github.com/agsmith/run-my-pool/internal/platform/cache"
)

type statsFixture struct {
	pools    *memory.PoolRepository
	entries  *memory.EntryRepository
	picks    *memory.PickRepository
	schedule *memory.ScheduleRepository
	svc      *StatsService
	now      time.Time
}

func newStatsFixture(t *testing.T, store *cache.Store) *statsFixture {
	t.Helper()

	f := &statsFixture{
		pools:    memory.NewPoolRepository(),
		entries:  memory.NewEntryRepository(),
		picks:    memory.NewPickRepository(),
		schedule: memory.NewScheduleRepository(),
		now:      time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewStatsService(f.pools, f.entries, f.picks, f.schedule, 18, store)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *statsFixture) seedPool(t *testing.T, rules pool.Rules) pool.Pool {
	t.Helper()

	p := pool.Pool{
		ID:         "pool-1",
		Name:       "Office Survivor",
		Visibility: pool.VisibilityPublic,
		OwnerID:    "owner-1",
		Rules:      rules,
		CreatedAt:  f.now,
		UpdatedAt:  f.now,
	}
	if err := f.pools.Create(context.Background(), p); err != nil {
		t.Fatalf("seed pool failed: %v", err)
	}
	return p
}

func (f *statsFixture) seedEntry(t *testing.T, poolID string, i int) entry.Entry {
	t.Helper()

	e := entry.Entry{
		ID:        fmt.Sprintf("entry-%02d", i),
		PoolID:    poolID,
		UserID:    fmt.Sprintf("user-%02d", i),
		Name:      fmt.Sprintf("Line %d", i),
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	if err := f.entries.Create(context.Background(), e); err != nil {
		t.Fatalf("seed entry failed: %v", err)
	}
	return e
}

func (f *statsFixture) seedPick(t *testing.T, entryID string, week int, teamCode string) {
	t.Helper()

	_, err := f.picks.Upsert(context.Background(), pick.Pick{
		ID:      fmt.Sprintf("pick-%s-%d", entryID, week),
		EntryID: entryID,
		Week:    week,
		Team:    teamCode,
	})
	if err != nil {
		t.Fatalf("seed pick failed: %v", err)
	}
}

func TestStatsService_SurvivorStats_Percentages(t *testing.T) {
	f := newStatsFixture(t, nil)
	p := f.seedPool(t, pool.Rules{TiesCountAsLoss: true, NoPickForfeit: true})

	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	if err := f.schedule.UpsertGames(context.Background(), []schedule.Game{
		gameAt(1, "KC", "LV", kickoff, schedule.StatusFinal, "KC"),
	}); err != nil {
		t.Fatalf("seed games failed: %v", err)
	}

	// Six entries rode the winner, four rode the loser.
	for i := 1; i <= 10; i++ {
		e := f.seedEntry(t, p.ID, i)
		teamCode := "KC"
		if i > 6 {
			teamCode = "LV"
		}
		f.seedPick(t, e.ID, 1, teamCode)
	}

	stats, err := f.svc.SurvivorStats(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("survivor stats failed: %v", err)
	}

	if stats.TotalEntries != 10 || stats.Survivors != 6 || stats.Eliminated != 4 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.SurvivorsPercentage != 60.0 || stats.EliminatedPercentage != 40.0 {
		t.Fatalf("unexpected percentages: %+v", stats)
	}
}

func TestStatsService_SurvivorStats_EmptyPool(t *testing.T) {
	f := newStatsFixture(t, nil)
	p := f.seedPool(t, pool.DefaultRules())

	stats, err := f.svc.SurvivorStats(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("survivor stats failed: %v", err)
	}
	if stats.TotalEntries != 0 || stats.Survivors != 0 || stats.Eliminated != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.SurvivorsPercentage != 0 || stats.EliminatedPercentage != 0 {
		t.Fatalf("expected zero percentages, got %+v", stats)
	}
}

func TestStatsService_SurvivorStats_UnknownPool(t *testing.T) {
	f := newStatsFixture(t, nil)

	_, err := f.svc.SurvivorStats(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsService_WeeklyDistribution_OrderAndBuckets(t *testing.T) {
	f := newStatsFixture(t, nil)
	p := f.seedPool(t, pool.DefaultRules())

	kickoff := time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC)
	if err := f.schedule.UpsertGames(context.Background(), []schedule.Game{
		gameAt(2, "KC", "PHI", kickoff, schedule.StatusScheduled, ""),
		gameAt(2, "BAL", "DAL", kickoff.Add(3*time.Hour), schedule.StatusScheduled, ""),
	}); err != nil {
		t.Fatalf("seed games failed: %v", err)
	}

	// 3x KC, 2x BAL, 2x DAL, 2 entries without a week 2 pick.
	teams := []string{"KC", "KC", "KC", "BAL", "BAL", "DAL", "DAL", "", ""}
	for i, teamCode := range teams {
		e := f.seedEntry(t, p.ID, i+1)
		if teamCode != "" {
			f.seedPick(t, e.ID, 2, teamCode)
		}
	}

	// Before the earliest kickoff the missing picks are still open.
	f.now = kickoff.Add(-time.Hour)
	dist, err := f.svc.WeeklyDistribution(t.Context(), p.ID, 2)
	if err != nil {
		t.Fatalf("weekly distribution failed: %v", err)
	}
	if dist.TotalEntries != 9 || dist.Unlocked != 2 || dist.NoSelection != 0 {
		t.Fatalf("unexpected pre-deadline buckets: %+v", dist)
	}

	want := []TeamPickCount{{Team: "KC", Count: 3}, {Team: "BAL", Count: 2}, {Team: "DAL", Count: 2}}
	if len(dist.Picks) != len(want) {
		t.Fatalf("expected %d teams, got %+v", len(want), dist.Picks)
	}
	for i, w := range want {
		if dist.Picks[i] != w {
			t.Fatalf("position %d: got %+v want %+v", i, dist.Picks[i], w)
		}
	}

	// After the deadline the same entries count as no-selection.
	f.now = kickoff
	dist, err = f.svc.WeeklyDistribution(t.Context(), p.ID, 2)
	if err != nil {
		t.Fatalf("weekly distribution failed: %v", err)
	}
	if dist.Unlocked != 0 || dist.NoSelection != 2 {
		t.Fatalf("unexpected post-deadline buckets: %+v", dist)
	}
}

func TestStatsService_WeeklyDistribution_InvalidWeek(t *testing.T) {
	f := newStatsFixture(t, nil)
	p := f.seedPool(t, pool.DefaultRules())

	for _, week := range []int{0, 19} {
		if _, err := f.svc.WeeklyDistribution(t.Context(), p.ID, week); !errors.Is(err, ErrInvalidWeek) {
			t.Fatalf("week %d: expected ErrInvalidWeek, got %v", week, err)
		}
	}
}

func TestStatsService_CacheInvalidation(t *testing.T) {
	f := newStatsFixture(t, cache.NewStore(time.Minute))
	p := f.seedPool(t, pool.DefaultRules())
	f.seedEntry(t, p.ID, 1)

	first, err := f.svc.SurvivorStats(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("survivor stats failed: %v", err)
	}
	if first.TotalEntries != 1 {
		t.Fatalf("expected 1 entry, got %+v", first)
	}

	// A write behind the cache stays invisible until invalidation.
	f.seedEntry(t, p.ID, 2)

	cached, err := f.svc.SurvivorStats(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("survivor stats failed: %v", err)
	}
	if cached.TotalEntries != 1 {
		t.Fatalf("expected cached count 1, got %+v", cached)
	}

	f.svc.InvalidatePool(t.Context(), p.ID)

	fresh, err := f.svc.SurvivorStats(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("survivor stats failed: %v", err)
	}
	if fresh.TotalEntries != 2 {
		t.Fatalf("expected recomputed count 2, got %+v", fresh)
	}
}

func TestStatsService_EntryVerdict(t *testing.T) {
	f := newStatsFixture(t, nil)
	p := f.seedPool(t, pool.Rules{TiesCountAsLoss: true})
	e := f.seedEntry(t, p.ID, 1)

	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	if err := f.schedule.UpsertGames(context.Background(), []schedule.Game{
		gameAt(1, "KC", "LV", kickoff, schedule.StatusFinal, "LV"),
	}); err != nil {
		t.Fatalf("seed games failed: %v", err)
	}
	f.seedPick(t, e.ID, 1, "KC")

	verdict, err := f.svc.EntryVerdict(t.Context(), e.ID)
	if err != nil {
		t.Fatalf("entry verdict failed: %v", err)
	}
	if !verdict.Eliminated() || verdict.EliminatedWeek != 1 || verdict.Reason != EliminationReasonLoss {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}

	if _, err := f.svc.EntryVerdict(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
