package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
)

const entryColumns = `id, public_id, pool_public_id, user_id, name, created_at, updated_at, deleted_at`

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, item entry.Entry) error {
	const query = `
		INSERT INTO entries (public_id, pool_public_id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.PoolID, item.UserID, item.Name, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (entry.Entry, bool, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE public_id = $1 AND deleted_at IS NULL`

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EntryRepository) ListByPool(ctx context.Context, poolID string) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE pool_public_id = $1 AND deleted_at IS NULL ORDER BY created_at, id`

	return r.list(ctx, query, poolID)
}

func (r *EntryRepository) ListByUserAndPool(ctx context.Context, userID, poolID string) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE user_id = $1 AND pool_public_id = $2 AND deleted_at IS NULL ORDER BY created_at, id`

	return r.list(ctx, query, userID, poolID)
}

func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at, id`

	return r.list(ctx, query, userID)
}

func (r *EntryRepository) list(ctx context.Context, query string, args ...any) ([]entry.Entry, error) {
	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EntryRepository) CountByPool(ctx context.Context, poolID string) (int, error) {
	const query = `SELECT COUNT(1) FROM entries WHERE pool_public_id = $1 AND deleted_at IS NULL`

	var count int
	if err := r.db.GetContext(ctx, &count, query, poolID); err != nil {
		return 0, fmt.Errorf("count entries by pool: %w", err)
	}
	return count, nil
}

func (r *EntryRepository) Update(ctx context.Context, item entry.Entry) error {
	const query = `UPDATE entries SET name = $2, updated_at = $3
		WHERE public_id = $1 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.UpdatedAt); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE entries SET deleted_at = NOW() WHERE public_id = $1 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
