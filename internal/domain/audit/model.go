package audit

import (
	"context"
	"time"
)

const (
	ActionPoolCreated  = "pool.created"
	ActionPoolUpdated  = "pool.updated"
	ActionPoolDeleted  = "pool.deleted"
	ActionEntryCreated = "entry.created"
	ActionEntryRenamed = "entry.renamed"
	ActionEntryDeleted = "entry.deleted"
	ActionPickSaved    = "pick.saved"
	ActionPickDeleted  = "pick.deleted"
)

// Record is one append-only audit trail row.
type Record struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	CreatedAt time.Time
}

// Recorder persists audit records. Writes are best effort; a failed
// audit write never fails the operation that produced it.
type Recorder interface {
	Record(ctx context.Context, item Record) error
}
