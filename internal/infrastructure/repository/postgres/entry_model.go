package postgres

import (
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
)

type entryTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	PoolPublicID string     `db:"pool_public_id"`
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (m entryTableModel) toDomain() entry.Entry {
	return entry.Entry{
		ID:        m.PublicID,
		PoolID:    m.PoolPublicID,
		UserID:    m.UserID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
