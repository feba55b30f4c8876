package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/domain/team"
)

// ScheduleService exposes the read-only schedule index.
type ScheduleService struct {
	scheduleRepo schedule.Repository
	seasonWeeks  int
}

func NewScheduleService(scheduleRepo schedule.Repository, seasonWeeks int) *ScheduleService {
	if seasonWeeks < 1 {
		seasonWeeks = 18
	}
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		seasonWeeks:  seasonWeeks,
	}
}

func (s *ScheduleService) SeasonWeeks() int {
	return s.seasonWeeks
}

func (s *ScheduleService) WeekGames(ctx context.Context, week int) ([]schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.WeekGames")
	defer span.End()

	if week < 1 || week > s.seasonWeeks {
		return nil, fmt.Errorf("%w: week %d not in 1..%d", ErrInvalidWeek, week, s.seasonWeeks)
	}

	games, err := s.scheduleRepo.ListByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("%w: list games: %v", ErrDependencyUnavailable, err)
	}

	sort.Slice(games, func(i, j int) bool {
		if !games[i].KickoffAt.Equal(games[j].KickoffAt) {
			return games[i].KickoffAt.Before(games[j].KickoffAt)
		}
		return games[i].HomeTeam < games[j].HomeTeam
	})
	return games, nil
}

// TeamsPlaying lists the teams with a game in the given week, ordered
// by team code, for pick selection.
func (s *ScheduleService) TeamsPlaying(ctx context.Context, week int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.TeamsPlaying")
	defer span.End()

	games, err := s.WeekGames(ctx, week)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(games)*2)
	out := make([]team.Team, 0, len(games)*2)
	for _, g := range games {
		for _, code := range []string{g.HomeTeam, g.AwayTeam} {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			if t, found := team.ByCode(code); found {
				out = append(out, t)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *ScheduleService) FullSchedule(ctx context.Context) ([]schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.FullSchedule")
	defer span.End()

	games, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list games: %v", ErrDependencyUnavailable, err)
	}

	sort.Slice(games, func(i, j int) bool {
		if games[i].Week != games[j].Week {
			return games[i].Week < games[j].Week
		}
		if !games[i].KickoffAt.Equal(games[j].KickoffAt) {
			return games[i].KickoffAt.Before(games[j].KickoffAt)
		}
		return games[i].HomeTeam < games[j].HomeTeam
	})
	return games, nil
}
