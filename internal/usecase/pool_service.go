package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/audit"
	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	idgen "github.com/agsmith/run-my-pool/internal/platform/id"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
)

type CreatePoolInput struct {
	OwnerID     string
	Name        string
	Description string
	Visibility  string
	LockTime    *time.Time
	Rules       *pool.Rules
}

type UpdatePoolInput struct {
	CallerID    string
	PoolID      string
	Name        *string
	Description *string
	Visibility  *string
	LockTime    *time.Time
	Rules       *pool.Rules
}

type PoolAdminStatus struct {
	PoolID         string
	IsOwner        bool
	IsAdmin        bool
	HasAdminAccess bool
}

type PoolService struct {
	poolRepo  pool.Repository
	entryRepo entry.Repository
	idGen     idgen.Generator
	auditor   audit.Recorder
	logger    *logging.Logger
	now       func() time.Time
}

func NewPoolService(
	poolRepo pool.Repository,
	entryRepo entry.Repository,
	idGen idgen.Generator,
	auditor audit.Recorder,
	logger *logging.Logger,
) *PoolService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PoolService{
		poolRepo:  poolRepo,
		entryRepo: entryRepo,
		idGen:     idGen,
		auditor:   auditor,
		logger:    logger,
		now:       time.Now,
	}
}

// Create registers a pool and makes the owner its first admin.
func (s *PoolService) Create(ctx context.Context, input CreatePoolInput) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Create")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerID == "" {
		return pool.Pool{}, fmt.Errorf("%w: owner id is required", ErrUnauthorized)
	}
	if input.Name == "" {
		return pool.Pool{}, fmt.Errorf("%w: pool name is required", ErrInvalidInput)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return pool.Pool{}, fmt.Errorf("generate pool id: %w", err)
	}

	rules := pool.DefaultRules()
	if input.Rules != nil {
		rules = *input.Rules
	}

	now := s.now().UTC()
	item := pool.Pool{
		ID:          newID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Visibility:  pool.NormalizeVisibility(input.Visibility),
		LockTime:    input.LockTime,
		OwnerID:     input.OwnerID,
		Rules:       rules,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.poolRepo.Create(ctx, item); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: create pool: %v", ErrDependencyUnavailable, err)
	}
	if err := s.poolRepo.AddAdmin(ctx, item.ID, input.OwnerID); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: add pool admin: %v", ErrDependencyUnavailable, err)
	}

	s.record(ctx, input.OwnerID, audit.ActionPoolCreated, "pool="+item.ID)
	return item, nil
}

func (s *PoolService) Get(ctx context.Context, poolID string) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Get")
	defer span.End()

	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return pool.Pool{}, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}

	item, found, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return pool.Pool{}, fmt.Errorf("%w: get pool: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return pool.Pool{}, fmt.Errorf("%w: pool=%s", ErrNotFound, poolID)
	}

	return item, nil
}

func (s *PoolService) ListPublic(ctx context.Context) ([]pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.ListPublic")
	defer span.End()

	items, err := s.poolRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list public pools: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

func (s *PoolService) ListMine(ctx context.Context, callerID string) ([]pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.ListMine")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}

	items, err := s.poolRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list pools by owner: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

// Update patches pool fields; only the owner or a pool admin may call it.
func (s *PoolService) Update(ctx context.Context, input UpdatePoolInput) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Update")
	defer span.End()

	input.CallerID = strings.TrimSpace(input.CallerID)
	input.PoolID = strings.TrimSpace(input.PoolID)
	if input.CallerID == "" {
		return pool.Pool{}, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}

	item, err := s.Get(ctx, input.PoolID)
	if err != nil {
		return pool.Pool{}, err
	}

	status, err := s.AdminStatus(ctx, input.PoolID, input.CallerID)
	if err != nil {
		return pool.Pool{}, err
	}
	if !status.HasAdminAccess {
		return pool.Pool{}, fmt.Errorf("%w: only the pool owner or an admin can update pool %s", ErrForbidden, input.PoolID)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pool.Pool{}, fmt.Errorf("%w: pool name cannot be empty", ErrInvalidInput)
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Visibility != nil {
		item.Visibility = pool.NormalizeVisibility(*input.Visibility)
	}
	if input.LockTime != nil {
		item.LockTime = input.LockTime
	}
	if input.Rules != nil {
		item.Rules = *input.Rules
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.poolRepo.Update(ctx, item); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: update pool: %v", ErrDependencyUnavailable, err)
	}

	s.record(ctx, input.CallerID, audit.ActionPoolUpdated, "pool="+item.ID)
	return item, nil
}

// Delete removes a pool. Only the owner may delete, and never while
// entries still reference the pool.
func (s *PoolService) Delete(ctx context.Context, callerID, poolID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Delete")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}

	item, err := s.Get(ctx, poolID)
	if err != nil {
		return err
	}
	if item.OwnerID != callerID {
		return fmt.Errorf("%w: only the pool owner can delete pool %s", ErrForbidden, poolID)
	}

	count, err := s.entryRepo.CountByPool(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("%w: count entries: %v", ErrDependencyUnavailable, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: pool %s still has %d entries", ErrInvalidInput, poolID, count)
	}

	if err := s.poolRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("%w: delete pool: %v", ErrDependencyUnavailable, err)
	}

	s.record(ctx, callerID, audit.ActionPoolDeleted, "pool="+item.ID)
	return nil
}

func (s *PoolService) AdminStatus(ctx context.Context, poolID, userID string) (PoolAdminStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.AdminStatus")
	defer span.End()

	item, err := s.Get(ctx, poolID)
	if err != nil {
		return PoolAdminStatus{}, err
	}

	isAdmin, err := s.poolRepo.IsAdmin(ctx, item.ID, userID)
	if err != nil {
		return PoolAdminStatus{}, fmt.Errorf("%w: check pool admin: %v", ErrDependencyUnavailable, err)
	}

	status := PoolAdminStatus{
		PoolID:  item.ID,
		IsOwner: item.OwnerID == userID,
		IsAdmin: isAdmin,
	}
	status.HasAdminAccess = status.IsOwner || status.IsAdmin
	return status, nil
}

func (s *PoolService) record(ctx context.Context, userID, action, details string) {
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
