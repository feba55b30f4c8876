package postgres

import (
	"database/sql"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
)

type gameTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	Week       int            `db:"week"`
	HomeTeam   string         `db:"home_team"`
	AwayTeam   string         `db:"away_team"`
	KickoffAt  time.Time      `db:"kickoff_at"`
	Status     string         `db:"status"`
	WinnerTeam sql.NullString `db:"winner_team"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (m gameTableModel) toDomain() schedule.Game {
	return schedule.Game{
		ID:         m.PublicID,
		Week:       m.Week,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		KickoffAt:  m.KickoffAt,
		Status:     m.Status,
		WinnerTeam: m.WinnerTeam.String,
	}
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
