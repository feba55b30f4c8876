package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/domain/team"
)

// SeedSchedule fills the schedule repository with a synthetic season:
// 16 games a week, every team playing once, pairings rotated each week
// so no matchup repeats for 31 weeks. Weeks begin on consecutive
// Sundays starting at seasonStart, with a handful of staggered kickoff
// slots so the week deadline differs from the last kickoff.
func SeedSchedule(ctx context.Context, repo *ScheduleRepository, seasonStart time.Time, weeks int) error {
	codes := make([]string, 0, len(team.All()))
	for _, t := range team.All() {
		codes = append(codes, t.Code)
	}

	games := make([]schedule.Game, 0, weeks*len(codes)/2)
	for week := 1; week <= weeks; week++ {
		weekStart := seasonStart.AddDate(0, 0, (week-1)*7)
		for i, pair := range roundRobinPairs(codes, week-1) {
			// Three kickoff slots: one Thursday night game, early
			// Sunday games, and late Sunday games.
			kickoff := weekStart.Add(13 * time.Hour)
			switch {
			case i == 0:
				kickoff = weekStart.AddDate(0, 0, -3).Add(20 * time.Hour)
			case i >= len(codes)/4:
				kickoff = weekStart.Add(16*time.Hour + 25*time.Minute)
			}
			games = append(games, schedule.Game{
				ID:        fmt.Sprintf("w%02d-%s-%s", week, pair[1], pair[0]),
				Week:      week,
				HomeTeam:  pair[0],
				AwayTeam:  pair[1],
				KickoffAt: kickoff,
				Status:    schedule.StatusScheduled,
			})
		}
	}
	return repo.UpsertGames(ctx, games)
}

// roundRobinPairs produces [home, away] pairs via the circle method:
// the first team stays fixed while the rest rotate by round.
func roundRobinPairs(codes []string, round int) [][2]string {
	n := len(codes)
	rotated := make([]string, 0, n-1)
	for i := 0; i < n-1; i++ {
		rotated = append(rotated, codes[1+((i+round)%(n-1))])
	}

	pairs := make([][2]string, 0, n/2)
	pairs = append(pairs, [2]string{codes[0], rotated[n-2]})
	for i := 0; i < (n/2)-1; i++ {
		home, away := rotated[i], rotated[n-3-i]
		if round%2 == 1 {
			home, away = away, home
		}
		pairs = append(pairs, [2]string{home, away})
	}
	return pairs
}
