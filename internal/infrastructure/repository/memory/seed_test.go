package memory

import (
	"context"
	"testing"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/domain/team"
)

func TestSeedSchedule_EveryTeamPlaysEveryWeek(t *testing.T) {
	repo := NewScheduleRepository()
	start := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)

	if err := SeedSchedule(context.Background(), repo, start, 18); err != nil {
		t.Fatalf("seed schedule failed: %v", err)
	}

	games, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(games) != 18*16 {
		t.Fatalf("expected %d games, got %d", 18*16, len(games))
	}

	matchups := make(map[string]struct{})
	for week := 1; week <= 18; week++ {
		weekGames, err := repo.ListByWeek(context.Background(), week)
		if err != nil {
			t.Fatalf("list week %d failed: %v", week, err)
		}
		if len(weekGames) != 16 {
			t.Fatalf("week %d: expected 16 games, got %d", week, len(weekGames))
		}

		seen := make(map[string]struct{}, 32)
		for _, g := range weekGames {
			for _, code := range []string{g.HomeTeam, g.AwayTeam} {
				if !team.IsValidCode(code) {
					t.Fatalf("week %d: invalid team code %q", week, code)
				}
				if _, dup := seen[code]; dup {
					t.Fatalf("week %d: team %s plays twice", week, code)
				}
				seen[code] = struct{}{}
			}

			// Orientation-insensitive matchup key.
			key := g.HomeTeam + "|" + g.AwayTeam
			if g.AwayTeam < g.HomeTeam {
				key = g.AwayTeam + "|" + g.HomeTeam
			}
			if _, dup := matchups[key]; dup {
				t.Fatalf("matchup %s repeats within the season", key)
			}
			matchups[key] = struct{}{}
		}
		if len(seen) != 32 {
			t.Fatalf("week %d: expected all 32 teams, got %d", week, len(seen))
		}
	}
}

func TestSeedSchedule_StaggersKickoffs(t *testing.T) {
	repo := NewScheduleRepository()
	start := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)

	if err := SeedSchedule(context.Background(), repo, start, 1); err != nil {
		t.Fatalf("seed schedule failed: %v", err)
	}

	games, err := repo.ListByWeek(context.Background(), 1)
	if err != nil {
		t.Fatalf("list week failed: %v", err)
	}

	kickoffs := make(map[time.Time]int)
	for _, g := range games {
		kickoffs[g.KickoffAt]++
		if g.Status != schedule.StatusScheduled {
			t.Fatalf("expected scheduled status, got %q", g.Status)
		}
	}
	if len(kickoffs) < 3 {
		t.Fatalf("expected at least 3 kickoff slots, got %d", len(kickoffs))
	}

	// The week deadline is the Thursday game, before the Sunday slots.
	deadline := schedule.WeekDeadline(games)
	if !deadline.Before(start.Add(13 * time.Hour)) {
		t.Fatalf("expected deadline before the Sunday slots, got %v", deadline)
	}
}
