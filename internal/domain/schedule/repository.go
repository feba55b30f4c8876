package schedule

import "context"

// Repository is the schedule index: season games keyed by week and team.
type Repository interface {
	GetGame(ctx context.Context, week int, teamCode string) (Game, bool, error)
	ListByWeek(ctx context.Context, week int) ([]Game, error)
	ListAll(ctx context.Context) ([]Game, error)
	UpsertGames(ctx context.Context, games []Game) error
}
