package postgres

import (
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
)

type poolTableModel struct {
	ID                int64      `db:"id"`
	PublicID          string     `db:"public_id"`
	Name              string     `db:"name"`
	Description       string     `db:"description"`
	Visibility        string     `db:"visibility"`
	LockTime          *time.Time `db:"lock_time"`
	OwnerID           string     `db:"owner_id"`
	TiesCountAsLoss   bool       `db:"ties_count_as_loss"`
	NoPickForfeit     bool       `db:"no_pick_forfeit"`
	MaxEntriesPerUser int        `db:"max_entries_per_user"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

func (m poolTableModel) toDomain() pool.Pool {
	return pool.Pool{
		ID:          m.PublicID,
		Name:        m.Name,
		Description: m.Description,
		Visibility:  m.Visibility,
		LockTime:    m.LockTime,
		OwnerID:     m.OwnerID,
		Rules: pool.Rules{
			TiesCountAsLoss:   m.TiesCountAsLoss,
			NoPickForfeit:     m.NoPickForfeit,
			MaxEntriesPerUser: m.MaxEntriesPerUser,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
