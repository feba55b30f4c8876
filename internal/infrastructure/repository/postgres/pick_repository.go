package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/agsmith/run-my-pool/internal/domain/pick"
)

const pickColumns = `id, public_id, entry_public_id, week, team, created_at, updated_at`

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetByEntryAndWeek(ctx context.Context, entryID string, week int) (pick.Pick, bool, error) {
	query := `SELECT ` + pickColumns + ` FROM picks WHERE entry_public_id = $1 AND week = $2`

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, entryID, week); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick by entry and week: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PickRepository) ListByEntry(ctx context.Context, entryID string) ([]pick.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM picks WHERE entry_public_id = $1 ORDER BY week`

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, entryID); err != nil {
		return nil, fmt.Errorf("select picks by entry: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PickRepository) ListByEntries(ctx context.Context, entryIDs []string) (map[string][]pick.Pick, error) {
	out := make(map[string][]pick.Pick, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}

	query := `SELECT ` + pickColumns + ` FROM picks
		WHERE entry_public_id = ANY($1) ORDER BY entry_public_id, week`

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(entryIDs)); err != nil {
		return nil, fmt.Errorf("select picks by entries: %w", err)
	}

	for _, row := range rows {
		out[row.EntryPublicID] = append(out[row.EntryPublicID], row.toDomain())
	}
	return out, nil
}

// Upsert replaces the entry's pick for the week in a single statement.
// The unique index on (entry_public_id, week) makes the swap atomic.
func (r *PickRepository) Upsert(ctx context.Context, item pick.Pick) (pick.Pick, error) {
	const query = `
		INSERT INTO picks (public_id, entry_public_id, week, team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entry_public_id, week) DO UPDATE SET
			team = EXCLUDED.team,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + pickColumns

	var row pickTableModel
	err := r.db.GetContext(ctx, &row, query,
		item.ID, item.EntryID, item.Week, item.Team, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return pick.Pick{}, fmt.Errorf("pick conflicts with an existing selection: %w", err)
		}
		return pick.Pick{}, fmt.Errorf("upsert pick: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PickRepository) DeleteByEntryAndWeek(ctx context.Context, entryID string, week int) error {
	const query = `DELETE FROM picks WHERE entry_public_id = $1 AND week = $2`

	if _, err := r.db.ExecContext(ctx, query, entryID, week); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	return nil
}

func (r *PickRepository) DeleteByEntry(ctx context.Context, entryID string) error {
	const query = `DELETE FROM picks WHERE entry_public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, entryID); err != nil {
		return fmt.Errorf("delete picks by entry: %w", err)
	}
	return nil
}
