package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
)

var (
	week1Kickoff = time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	week2Kickoff = time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC)
)

func seedTwoWeeks(t *testing.T, f *pickFixture) {
	t.Helper()
	f.mustAddGames(t,
		gameAt(1, "KC", "LV", week1Kickoff, schedule.StatusScheduled, ""),
		gameAt(1, "BAL", "CLE", week1Kickoff, schedule.StatusScheduled, ""),
		gameAt(2, "KC", "PHI", week2Kickoff, schedule.StatusScheduled, ""),
		gameAt(2, "BAL", "DAL", week2Kickoff, schedule.StatusScheduled, ""),
	)
}

func TestPickService_Submit_NormalizesTeamAndStoresPick(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	saved, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{
		CallerID: "user-1",
		EntryID:  e.ID,
		Week:     1,
		Team:     " kc ",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if saved.Team != "KC" {
		t.Fatalf("expected normalized team KC, got %s", saved.Team)
	}
	if saved.Week != 1 || saved.EntryID != e.ID {
		t.Fatalf("unexpected pick stored: %+v", saved)
	}

	picks, err := f.pickSvc.ListForEntry(t.Context(), "user-1", e.ID)
	if err != nil {
		t.Fatalf("list picks failed: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(picks))
	}
}

func TestPickService_Submit_RejectsTeamReuseAcrossWeeks(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	if _, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "KC"}); err != nil {
		t.Fatalf("week 1 submit failed: %v", err)
	}

	_, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 2, Team: "KC"})
	if !errors.Is(err, ErrTeamAlreadyUsed) {
		t.Fatalf("expected ErrTeamAlreadyUsed, got %v", err)
	}

	var used *TeamUsedError
	if !errors.As(err, &used) {
		t.Fatalf("expected *TeamUsedError, got %T", err)
	}
	if used.Team != "KC" || used.ConflictWeek != 1 {
		t.Fatalf("unexpected conflict detail: %+v", used)
	}
}

func TestPickService_Submit_SwapFreesReplacedTeam(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	first, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "KC"})
	if err != nil {
		t.Fatalf("initial submit failed: %v", err)
	}

	// Replacing the week 1 pick keeps its identity and creation time.
	f.advanceTo(f.now.Add(time.Hour))
	swapped, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "BAL"})
	if err != nil {
		t.Fatalf("swap submit failed: %v", err)
	}
	if swapped.ID != first.ID {
		t.Fatalf("expected replaced pick to keep id %s, got %s", first.ID, swapped.ID)
	}
	if !swapped.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected created_at unchanged, got %v vs %v", swapped.CreatedAt, first.CreatedAt)
	}
	if swapped.UpdatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("expected updated_at to advance on swap")
	}

	// KC is no longer burned, so week 2 can take it.
	if _, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 2, Team: "KC"}); err != nil {
		t.Fatalf("expected KC to be available after swap, got %v", err)
	}

	picks, err := f.pickSvc.ListForEntry(t.Context(), "user-1", e.ID)
	if err != nil {
		t.Fatalf("list picks failed: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}
	if picks[0].Team != "BAL" || picks[1].Team != "KC" {
		t.Fatalf("unexpected picks after swap: %+v", picks)
	}
}

func TestPickService_Submit_RefusesAfterKickoff(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	f.advanceTo(week1Kickoff)
	_, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "KC"})
	if !errors.Is(err, ErrWeekLocked) {
		t.Fatalf("expected ErrWeekLocked at kickoff, got %v", err)
	}
}

func TestPickService_Submit_RefusesTeamWithoutGame(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	_, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "MIA"})
	if !errors.Is(err, ErrWeekLocked) {
		t.Fatalf("expected ErrWeekLocked for a team without a game, got %v", err)
	}
}

func TestPickService_Submit_ValidatesWeekAndTeam(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	for _, week := range []int{0, -1, 19} {
		_, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: week, Team: "KC"})
		if !errors.Is(err, ErrInvalidWeek) {
			t.Fatalf("week %d: expected ErrInvalidWeek, got %v", week, err)
		}
	}

	_, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "XXX"})
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}

func TestPickService_Submit_EnforcesOwnership(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	_, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-2", EntryID: e.ID, Week: 1, Team: "KC"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign entry, got %v", err)
	}

	_, err = f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: "missing", Week: 1, Team: "KC"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown entry, got %v", err)
	}

	_, err = f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "", EntryID: e.ID, Week: 1, Team: "KC"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without caller, got %v", err)
	}
}

func TestPickService_Delete_RespectsLock(t *testing.T) {
	f := newPickFixture(t, 18)
	seedTwoWeeks(t, f)
	p := f.mustCreatePool(t, "user-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Main")

	if _, err := f.pickSvc.Submit(t.Context(), SubmitPickInput{CallerID: "user-1", EntryID: e.ID, Week: 1, Team: "KC"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := f.pickSvc.Delete(t.Context(), "user-1", e.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing pick, got %v", err)
	}

	f.advanceTo(week1Kickoff.Add(time.Minute))
	if err := f.pickSvc.Delete(t.Context(), "user-1", e.ID, 1); !errors.Is(err, ErrWeekLocked) {
		t.Fatalf("expected ErrWeekLocked after kickoff, got %v", err)
	}

	f.advanceTo(week1Kickoff.Add(-time.Hour))
	if err := f.pickSvc.Delete(t.Context(), "user-1", e.ID, 1); err != nil {
		t.Fatalf("delete before kickoff failed: %v", err)
	}

	picks, err := f.pickSvc.ListForEntry(t.Context(), "user-1", e.ID)
	if err != nil {
		t.Fatalf("list picks failed: %v", err)
	}
	if len(picks) != 0 {
		t.Fatalf("expected no picks after delete, got %d", len(picks))
	}
}
