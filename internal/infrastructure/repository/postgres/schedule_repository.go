package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
)

const gameColumns = `id, public_id, week, home_team, away_team, kickoff_at, status, winner_team, created_at, updated_at`

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetGame(ctx context.Context, week int, teamCode string) (schedule.Game, bool, error) {
	query := `SELECT ` + gameColumns + ` FROM games
		WHERE week = $1 AND (home_team = $2 OR away_team = $2)`

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, week, teamCode); err != nil {
		if isNotFound(err) {
			return schedule.Game{}, false, nil
		}
		return schedule.Game{}, false, fmt.Errorf("get game by week and team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ScheduleRepository) ListByWeek(ctx context.Context, week int) ([]schedule.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games
		WHERE week = $1 ORDER BY kickoff_at, home_team`

	return r.list(ctx, query, week)
}

func (r *ScheduleRepository) ListAll(ctx context.Context) ([]schedule.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY week, kickoff_at, home_team`

	return r.list(ctx, query)
}

func (r *ScheduleRepository) list(ctx context.Context, query string, args ...any) ([]schedule.Game, error) {
	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScheduleRepository) UpsertGames(ctx context.Context, games []schedule.Game) error {
	if len(games) == 0 {
		return nil
	}

	const query = `
		INSERT INTO games (public_id, week, home_team, away_team, kickoff_at, status, winner_team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (public_id) DO UPDATE SET
			week = EXCLUDED.week,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			kickoff_at = EXCLUDED.kickoff_at,
			status = EXCLUDED.status,
			winner_team = EXCLUDED.winner_team,
			updated_at = NOW()`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert games tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, game := range games {
		_, err := tx.ExecContext(ctx, query,
			game.ID, game.Week, game.HomeTeam, game.AwayTeam,
			game.KickoffAt, game.Status, nullableString(game.WinnerTeam))
		if err != nil {
			return fmt.Errorf("upsert game %s: %w", game.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert games tx: %w", err)
	}
	return nil
}
