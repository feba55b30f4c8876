package entry

import "context"

// Repository describes entry persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Entry) error
	GetByID(ctx context.Context, id string) (Entry, bool, error)
	ListByPool(ctx context.Context, poolID string) ([]Entry, error)
	ListByUserAndPool(ctx context.Context, userID, poolID string) ([]Entry, error)
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	CountByPool(ctx context.Context, poolID string) (int, error)
	Update(ctx context.Context, item Entry) error
	Delete(ctx context.Context, id string) error
}
