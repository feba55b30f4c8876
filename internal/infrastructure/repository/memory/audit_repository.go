package memory

import (
	"context"
	"sync"

	"github.com/agsmith/run-my-pool/internal/domain/audit"
)

type AuditRepository struct {
	mu    sync.RWMutex
	items []audit.Record
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Record(_ context.Context, rec audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, rec)
	return nil
}

// Records returns a copy of everything recorded so far, oldest first.
func (r *AuditRepository) Records() []audit.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Record, len(r.items))
	copy(out, r.items)
	return out
}
