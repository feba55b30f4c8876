package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/audit"
	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	idgen "github.com/agsmith/run-my-pool/internal/platform/id"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
)

type CreateEntryInput struct {
	CallerID string
	PoolID   string
	Name     string
}

type EntryService struct {
	poolRepo  pool.Repository
	entryRepo entry.Repository
	pickRepo  pick.Repository
	idGen     idgen.Generator
	auditor   audit.Recorder
	logger    *logging.Logger
	now       func() time.Time
}

func NewEntryService(
	poolRepo pool.Repository,
	entryRepo entry.Repository,
	pickRepo pick.Repository,
	idGen idgen.Generator,
	auditor audit.Recorder,
	logger *logging.Logger,
) *EntryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EntryService{
		poolRepo:  poolRepo,
		entryRepo: entryRepo,
		pickRepo:  pickRepo,
		idGen:     idGen,
		auditor:   auditor,
		logger:    logger,
		now:       time.Now,
	}
}

// Create adds an entry for the caller, honoring the pool's per-user
// entry limit and per-pool name uniqueness for one user.
func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Create")
	defer span.End()

	input.CallerID = strings.TrimSpace(input.CallerID)
	input.PoolID = strings.TrimSpace(input.PoolID)
	input.Name = strings.TrimSpace(input.Name)
	if input.CallerID == "" {
		return entry.Entry{}, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}
	if input.PoolID == "" {
		return entry.Entry{}, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return entry.Entry{}, fmt.Errorf("%w: entry name is required", ErrInvalidInput)
	}

	p, found, err := s.poolRepo.GetByID(ctx, input.PoolID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: get pool: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return entry.Entry{}, fmt.Errorf("%w: pool=%s", ErrNotFound, input.PoolID)
	}

	mine, err := s.entryRepo.ListByUserAndPool(ctx, input.CallerID, input.PoolID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: list entries: %v", ErrDependencyUnavailable, err)
	}
	for _, e := range mine {
		if strings.EqualFold(e.Name, input.Name) {
			return entry.Entry{}, fmt.Errorf("%w: entry named %q already exists in this pool", ErrInvalidInput, input.Name)
		}
	}
	if p.Rules.MaxEntriesPerUser > 0 && len(mine) >= p.Rules.MaxEntriesPerUser {
		return entry.Entry{}, fmt.Errorf("%w: pool allows at most %d entries per user", ErrInvalidInput, p.Rules.MaxEntriesPerUser)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	now := s.now().UTC()
	item := entry.Entry{
		ID:        newID,
		PoolID:    input.PoolID,
		UserID:    input.CallerID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.entryRepo.Create(ctx, item); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: create entry: %v", ErrDependencyUnavailable, err)
	}

	s.record(ctx, input.CallerID, audit.ActionEntryCreated, "entry="+item.ID+" pool="+item.PoolID)
	return item, nil
}

// Get returns the caller's own entry.
func (s *EntryService) Get(ctx context.Context, callerID, entryID string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Get")
	defer span.End()

	return s.ownedEntry(ctx, callerID, entryID)
}

func (s *EntryService) ListMine(ctx context.Context, callerID string) ([]entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListMine")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}

	items, err := s.entryRepo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

func (s *EntryService) ListMineByPool(ctx context.Context, callerID, poolID string) ([]entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListMineByPool")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	poolID = strings.TrimSpace(poolID)
	if callerID == "" {
		return nil, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}
	if poolID == "" {
		return nil, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}

	items, err := s.entryRepo.ListByUserAndPool(ctx, callerID, poolID)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

// ListPoolEntries lists every entry in a pool, for standings display.
func (s *EntryService) ListPoolEntries(ctx context.Context, poolID string) ([]entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListPoolEntries")
	defer span.End()

	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return nil, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}

	items, err := s.entryRepo.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

// Rename updates the entry display name; trimmed, non-empty.
func (s *EntryService) Rename(ctx context.Context, callerID, entryID, name string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Rename")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return entry.Entry{}, fmt.Errorf("%w: entry name cannot be empty", ErrInvalidInput)
	}

	item, err := s.ownedEntry(ctx, callerID, entryID)
	if err != nil {
		return entry.Entry{}, err
	}

	item.Name = name
	item.UpdatedAt = s.now().UTC()
	if err := s.entryRepo.Update(ctx, item); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: update entry: %v", ErrDependencyUnavailable, err)
	}

	s.record(ctx, item.UserID, audit.ActionEntryRenamed, "entry="+item.ID)
	return item, nil
}

// Delete removes the entry and all of its picks.
func (s *EntryService) Delete(ctx context.Context, callerID, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Delete")
	defer span.End()

	item, err := s.ownedEntry(ctx, callerID, entryID)
	if err != nil {
		return err
	}

	if err := s.pickRepo.DeleteByEntry(ctx, item.ID); err != nil {
		return fmt.Errorf("%w: delete picks for entry: %v", ErrDependencyUnavailable, err)
	}
	if err := s.entryRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("%w: delete entry: %v", ErrDependencyUnavailable, err)
	}

	s.record(ctx, item.UserID, audit.ActionEntryDeleted, "entry="+item.ID)
	return nil
}

func (s *EntryService) ownedEntry(ctx context.Context, callerID, entryID string) (entry.Entry, error) {
	callerID = strings.TrimSpace(callerID)
	entryID = strings.TrimSpace(entryID)
	if callerID == "" {
		return entry.Entry{}, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}
	if entryID == "" {
		return entry.Entry{}, fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	item, found, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: get entry: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return entry.Entry{}, fmt.Errorf("%w: entry=%s", ErrNotFound, entryID)
	}
	if item.UserID != callerID {
		return entry.Entry{}, fmt.Errorf("%w: entry %s is not owned by caller", ErrForbidden, entryID)
	}
	return item, nil
}

func (s *EntryService) record(ctx context.Context, userID, action, details string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, audit.Record{
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit write failed", "action", action, "error", err)
	}
}
