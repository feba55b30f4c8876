package memory

import (
	"context"
	"testing"

	"github.com/agsmith/run-my-pool/internal/domain/pick"
)

func TestPickRepository_UpsertReplacesWeekPick(t *testing.T) {
	repo := NewPickRepository()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, pick.Pick{ID: "p1", EntryID: "e1", Week: 1, Team: "KC"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if first.Team != "KC" {
		t.Fatalf("unexpected stored pick: %+v", first)
	}

	// A new id for the same (entry, week) replaces the old row.
	if _, err := repo.Upsert(ctx, pick.Pick{ID: "p2", EntryID: "e1", Week: 1, Team: "BAL"}); err != nil {
		t.Fatalf("replacement upsert failed: %v", err)
	}

	picks, err := repo.ListByEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(picks) != 1 || picks[0].ID != "p2" || picks[0].Team != "BAL" {
		t.Fatalf("expected single replaced pick, got %+v", picks)
	}

	// Same id, same week: plain update.
	if _, err := repo.Upsert(ctx, pick.Pick{ID: "p2", EntryID: "e1", Week: 1, Team: "SF"}); err != nil {
		t.Fatalf("update upsert failed: %v", err)
	}
	got, found, err := repo.GetByEntryAndWeek(ctx, "e1", 1)
	if err != nil || !found {
		t.Fatalf("get failed: found=%v err=%v", found, err)
	}
	if got.Team != "SF" {
		t.Fatalf("expected updated team SF, got %+v", got)
	}
}

func TestPickRepository_ListByEntries(t *testing.T) {
	repo := NewPickRepository()
	ctx := context.Background()

	seed := []pick.Pick{
		{ID: "p1", EntryID: "e1", Week: 2, Team: "KC"},
		{ID: "p2", EntryID: "e1", Week: 1, Team: "BAL"},
		{ID: "p3", EntryID: "e2", Week: 1, Team: "SF"},
		{ID: "p4", EntryID: "e3", Week: 1, Team: "DET"},
	}
	for _, p := range seed {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	byEntry, err := repo.ListByEntries(ctx, []string{"e1", "e2"})
	if err != nil {
		t.Fatalf("list by entries failed: %v", err)
	}
	if len(byEntry) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(byEntry))
	}
	if len(byEntry["e1"]) != 2 || byEntry["e1"][0].Week != 1 || byEntry["e1"][1].Week != 2 {
		t.Fatalf("expected e1 picks ordered by week, got %+v", byEntry["e1"])
	}
	if _, ok := byEntry["e3"]; ok {
		t.Fatalf("e3 was not requested, got %+v", byEntry)
	}
}

func TestPickRepository_DeleteByEntry(t *testing.T) {
	repo := NewPickRepository()
	ctx := context.Background()

	for _, p := range []pick.Pick{
		{ID: "p1", EntryID: "e1", Week: 1, Team: "KC"},
		{ID: "p2", EntryID: "e1", Week: 2, Team: "BAL"},
		{ID: "p3", EntryID: "e2", Week: 1, Team: "SF"},
	} {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	if err := repo.DeleteByEntry(ctx, "e1"); err != nil {
		t.Fatalf("delete by entry failed: %v", err)
	}

	gone, err := repo.ListByEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected no picks for e1, got %+v", gone)
	}

	kept, err := repo.ListByEntry(ctx, "e2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected e2 pick untouched, got %+v", kept)
	}
}
