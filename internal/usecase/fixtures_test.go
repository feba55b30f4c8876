package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/infrastructure/repository/memory"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
)

type seqIDGenerator struct {
	n atomic.Int64
}

func (g *seqIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("id-%04d", g.n.Add(1)), nil
}

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

// pickFixture wires the pick path against in-memory repositories with a
// controllable clock.
type pickFixture struct {
	pools    *memory.PoolRepository
	entries  *memory.EntryRepository
	picks    *memory.PickRepository
	schedule *memory.ScheduleRepository
	audit    *memory.AuditRepository

	poolSvc  *PoolService
	entrySvc *EntryService
	pickSvc  *PickService
	statsSvc *StatsService

	now time.Time
}

func newPickFixture(t *testing.T, seasonWeeks int) *pickFixture {
	t.Helper()

	f := &pickFixture{
		pools:    memory.NewPoolRepository(),
		entries:  memory.NewEntryRepository(),
		picks:    memory.NewPickRepository(),
		schedule: memory.NewScheduleRepository(),
		audit:    memory.NewAuditRepository(),
		now:      time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC),
	}

	idGen := &seqIDGenerator{}
	logger := logging.NewNop()

	f.poolSvc = NewPoolService(f.pools, f.entries, idGen, f.audit, logger)
	f.entrySvc = NewEntryService(f.pools, f.entries, f.picks, idGen, f.audit, logger)
	f.pickSvc = NewPickService(f.entries, f.picks, f.schedule, seasonWeeks, idGen, f.audit, logger)
	f.statsSvc = NewStatsService(f.pools, f.entries, f.picks, f.schedule, seasonWeeks, nil)

	clock := func() time.Time { return f.now }
	f.poolSvc.now = clock
	f.entrySvc.now = clock
	f.pickSvc.now = clock
	f.statsSvc.now = clock

	return f
}

func (f *pickFixture) advanceTo(at time.Time) {
	f.now = at
}

func (f *pickFixture) mustCreatePool(t *testing.T, ownerID string, rules pool.Rules) pool.Pool {
	t.Helper()

	p, err := f.poolSvc.Create(t.Context(), CreatePoolInput{
		OwnerID: ownerID,
		Name:    "Office Survivor",
		Rules:   &rules,
	})
	if err != nil {
		t.Fatalf("create pool failed: %v", err)
	}
	return p
}

func (f *pickFixture) mustCreateEntry(t *testing.T, poolID, userID, name string) entry.Entry {
	t.Helper()

	e, err := f.entrySvc.Create(t.Context(), CreateEntryInput{
		CallerID: userID,
		PoolID:   poolID,
		Name:     name,
	})
	if err != nil {
		t.Fatalf("create entry failed: %v", err)
	}
	return e
}

func (f *pickFixture) mustAddGames(t *testing.T, games ...schedule.Game) {
	t.Helper()

	if err := f.schedule.UpsertGames(context.Background(), games); err != nil {
		t.Fatalf("seed games failed: %v", err)
	}
}

func gameAt(week int, away, home string, kickoff time.Time, status, winner string) schedule.Game {
	return schedule.Game{
		ID:         fmt.Sprintf("w%02d-%s-%s", week, away, home),
		Week:       week,
		HomeTeam:   home,
		AwayTeam:   away,
		KickoffAt:  kickoff,
		Status:     status,
		WinnerTeam: winner,
	}
}
