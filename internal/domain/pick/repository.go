package pick

import "context"

// Repository describes pick persistence needs from use cases.
// Upsert must be atomic with respect to other writes on the same entry.
type Repository interface {
	GetByEntryAndWeek(ctx context.Context, entryID string, week int) (Pick, bool, error)
	ListByEntry(ctx context.Context, entryID string) ([]Pick, error)
	ListByEntries(ctx context.Context, entryIDs []string) (map[string][]Pick, error)
	Upsert(ctx context.Context, item Pick) (Pick, error)
	DeleteByEntryAndWeek(ctx context.Context, entryID string, week int) error
	DeleteByEntry(ctx context.Context, entryID string) error
}
