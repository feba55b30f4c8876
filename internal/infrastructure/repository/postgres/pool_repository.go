package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
)

const poolColumns = `id, public_id, name, description, visibility, lock_time, owner_id,
	ties_count_as_loss, no_pick_forfeit, max_entries_per_user, created_at, updated_at, deleted_at`

type PoolRepository struct {
	db *sqlx.DB
}

func NewPoolRepository(db *sqlx.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

func (r *PoolRepository) Create(ctx context.Context, item pool.Pool) error {
	const query = `
		INSERT INTO pools (
			public_id, name, description, visibility, lock_time, owner_id,
			ties_count_as_loss, no_pick_forfeit, max_entries_per_user, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.Visibility, item.LockTime, item.OwnerID,
		item.Rules.TiesCountAsLoss, item.Rules.NoPickForfeit, item.Rules.MaxEntriesPerUser,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pool: %w", err)
	}
	return nil
}

func (r *PoolRepository) GetByID(ctx context.Context, id string) (pool.Pool, bool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE public_id = $1 AND deleted_at IS NULL`

	var row poolTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return pool.Pool{}, false, nil
		}
		return pool.Pool{}, false, fmt.Errorf("get pool by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PoolRepository) ListPublic(ctx context.Context) ([]pool.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools
		WHERE visibility = $1 AND deleted_at IS NULL ORDER BY created_at, id`

	return r.list(ctx, query, pool.VisibilityPublic)
}

func (r *PoolRepository) ListByOwner(ctx context.Context, ownerID string) ([]pool.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools
		WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at, id`

	return r.list(ctx, query, ownerID)
}

func (r *PoolRepository) List(ctx context.Context) ([]pool.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE deleted_at IS NULL ORDER BY created_at, id`

	return r.list(ctx, query)
}

func (r *PoolRepository) list(ctx context.Context, query string, args ...any) ([]pool.Pool, error) {
	var rows []poolTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pools: %w", err)
	}

	out := make([]pool.Pool, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PoolRepository) Update(ctx context.Context, item pool.Pool) error {
	const query = `
		UPDATE pools SET
			name = $2, description = $3, visibility = $4, lock_time = $5,
			ties_count_as_loss = $6, no_pick_forfeit = $7, max_entries_per_user = $8, updated_at = $9
		WHERE public_id = $1 AND deleted_at IS NULL`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.Visibility, item.LockTime,
		item.Rules.TiesCountAsLoss, item.Rules.NoPickForfeit, item.Rules.MaxEntriesPerUser,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pool: %w", err)
	}
	return nil
}

func (r *PoolRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE pools SET deleted_at = NOW() WHERE public_id = $1 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete pool: %w", err)
	}
	return nil
}

func (r *PoolRepository) AddAdmin(ctx context.Context, poolID, userID string) error {
	const query = `
		INSERT INTO pool_admins (pool_public_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (pool_public_id, user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, poolID, userID); err != nil {
		return fmt.Errorf("insert pool admin: %w", err)
	}
	return nil
}

func (r *PoolRepository) IsAdmin(ctx context.Context, poolID, userID string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM pool_admins WHERE pool_public_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, poolID, userID); err != nil {
		return false, fmt.Errorf("check pool admin: %w", err)
	}
	return exists, nil
}
