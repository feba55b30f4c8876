package pool

import "context"

// Repository describes pool persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Pool) error
	GetByID(ctx context.Context, id string) (Pool, bool, error)
	ListPublic(ctx context.Context) ([]Pool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pool, error)
	List(ctx context.Context) ([]Pool, error)
	Update(ctx context.Context, item Pool) error
	Delete(ctx context.Context, id string) error

	AddAdmin(ctx context.Context, poolID, userID string) error
	IsAdmin(ctx context.Context, poolID, userID string) (bool, error)
}
