package postgres

import (
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/pick"
)

type pickTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	EntryPublicID string    `db:"entry_public_id"`
	Week          int       `db:"week"`
	Team          string    `db:"team"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m pickTableModel) toDomain() pick.Pick {
	return pick.Pick{
		ID:        m.PublicID,
		EntryID:   m.EntryPublicID,
		Week:      m.Week,
		Team:      m.Team,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
