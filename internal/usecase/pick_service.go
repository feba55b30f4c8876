package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/audit"
	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/domain/team"
	idgen "github.com/agsmith/run-my-pool/internal/platform/id"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
)

type SubmitPickInput struct {
	CallerID string
	EntryID  string
	Week     int
	Team     string
}

// statsInvalidator drops cached aggregates for a pool after pick writes.
type statsInvalidator interface {
	InvalidatePool(ctx context.Context, poolID string)
}

// PickService is the pick ledger: it decides whether a pick request is
// legal and commits it. Submissions are serialized per entry.
type PickService struct {
	entryRepo    entry.Repository
	pickRepo     pick.Repository
	scheduleRepo schedule.Repository
	seasonWeeks  int
	idGen        idgen.Generator
	auditor      audit.Recorder
	stats        statsInvalidator
	logger       *logging.Logger
	now          func() time.Time

	mu         sync.Mutex
	entryLocks map[string]*sync.Mutex
}

func NewPickService(
	entryRepo entry.Repository,
	pickRepo pick.Repository,
	scheduleRepo schedule.Repository,
	seasonWeeks int,
	idGen idgen.Generator,
	auditor audit.Recorder,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}
	if seasonWeeks < 1 {
		seasonWeeks = 18
	}

	return &PickService{
		entryRepo:    entryRepo,
		pickRepo:     pickRepo,
		scheduleRepo: scheduleRepo,
		seasonWeeks:  seasonWeeks,
		idGen:        idGen,
		auditor:      auditor,
		logger:       logger,
		now:          time.Now,
		entryLocks:   make(map[string]*sync.Mutex),
	}
}

// SetStatsInvalidator wires the aggregate cache; optional.
func (s *PickService) SetStatsInvalidator(stats statsInvalidator) {
	s.stats = stats
}

// Submit validates and commits a pick for (entry, week). An existing
// pick for the same week is replaced, not appended. Precondition
// failures surface as distinct error kinds in a fixed order: ownership,
// week range, team code, lock time, team reuse.
func (s *PickService) Submit(ctx context.Context, input SubmitPickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	input.CallerID = strings.TrimSpace(input.CallerID)
	input.EntryID = strings.TrimSpace(input.EntryID)
	if input.CallerID == "" {
		return pick.Pick{}, fmt.Errorf("%w: caller id is required", ErrUnauthorized)
	}
	if input.EntryID == "" {
		return pick.Pick{}, fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	unlock := s.lockEntry(input.EntryID)
	defer unlock()

	e, err := s.ownedEntry(ctx, input.CallerID, input.EntryID)
	if err != nil {
		return pick.Pick{}, err
	}

	if input.Week < 1 || input.Week > s.seasonWeeks {
		return pick.Pick{}, fmt.Errorf("%w: week %d not in 1..%d", ErrInvalidWeek, input.Week, s.seasonWeeks)
	}

	teamCode := team.NormalizeCode(input.Team)
	if !team.IsValidCode(teamCode) {
		return pick.Pick{}, fmt.Errorf("%w: %q", ErrUnknownTeam, input.Team)
	}

	game, found, err := s.scheduleRepo.GetGame(ctx, input.Week, teamCode)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("%w: get game week=%d team=%s: %v", ErrDependencyUnavailable, input.Week, teamCode, err)
	}
	now := s.now().UTC()
	if !found {
		return pick.Pick{}, fmt.Errorf("%w: no game scheduled for %s in week %d", ErrWeekLocked, teamCode, input.Week)
	}
	if !now.Before(game.KickoffAt) {
		return pick.Pick{}, fmt.Errorf("%w: kickoff for %s in week %d has passed", ErrWeekLocked, teamCode, input.Week)
	}

	existing, err := s.pickRepo.ListByEntry(ctx, input.EntryID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("%w: list picks for entry %s: %v", ErrDependencyUnavailable, input.EntryID, err)
	}

	// The week-W pick being replaced does not count as a burned team,
	// otherwise a swap from X to Y would spuriously reject X.
	var prior *pick.Pick
	for i := range existing {
		p := existing[i]
		if p.Week == input.Week {
			prior = &existing[i]
			continue
		}
		if p.Team == teamCode {
			return pick.Pick{}, &TeamUsedError{Team: teamCode, ConflictWeek: p.Week}
		}
	}

	item := pick.Pick{
		EntryID:   input.EntryID,
		Week:      input.Week,
		Team:      teamCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prior != nil {
		item.ID = prior.ID
		item.CreatedAt = prior.CreatedAt
	} else {
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return pick.Pick{}, fmt.Errorf("generate pick id: %w", idErr)
		}
		item.ID = newID
	}

	saved, err := s.pickRepo.Upsert(ctx, item)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("%w: save pick: %v", ErrDependencyUnavailable, err)
	}

	s.invalidatePool(ctx, e.PoolID)
	s.record(ctx, input.CallerID, audit.ActionPickSaved,
		fmt.Sprintf("entry=%s week=%d team=%s", input.EntryID, input.Week, teamCode))

	return saved, nil
}

// ListForEntry returns the caller's picks for one entry, ordered by week.
func (s *PickService) ListForEntry(ctx context.Context, callerID, entryID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListForEntry")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	entryID = strings.TrimSpace(entryID)
	if callerID == "" || entryID == "" {
		return nil, fmt.Errorf("%w: caller id and entry id are required", ErrInvalidInput)
	}

	if _, err := s.ownedEntry(ctx, callerID, entryID); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("%w: list picks: %v", ErrDependencyUnavailable, err)
	}

	sort.Slice(picks, func(i, j int) bool { return picks[i].Week < picks[j].Week })
	return picks, nil
}

// Delete removes the caller's pick for (entry, week). A locked pick is
// immutable, deletion included.
func (s *PickService) Delete(ctx context.Context, callerID, entryID string, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Delete")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	entryID = strings.TrimSpace(entryID)
	if callerID == "" || entryID == "" {
		return fmt.Errorf("%w: caller id and entry id are required", ErrInvalidInput)
	}

	unlock := s.lockEntry(entryID)
	defer unlock()

	e, err := s.ownedEntry(ctx, callerID, entryID)
	if err != nil {
		return err
	}

	p, found, err := s.pickRepo.GetByEntryAndWeek(ctx, entryID, week)
	if err != nil {
		return fmt.Errorf("%w: get pick: %v", ErrDependencyUnavailable, err)
	}
	if !found {
		return fmt.Errorf("%w: no pick for entry %s week %d", ErrNotFound, entryID, week)
	}

	game, gameFound, err := s.scheduleRepo.GetGame(ctx, week, p.Team)
	if err != nil {
		return fmt.Errorf("%w: get game week=%d team=%s: %v", ErrDependencyUnavailable, week, p.Team, err)
	}
	if gameFound && !s.now().UTC().Before(game.KickoffAt) {
		return fmt.Errorf("%w: pick for %s in week %d is locked", ErrWeekLocked, p.Team, week)
	}

	if err := s.pickRepo.DeleteByEntryAndWeek(ctx, entryID, week); err != nil {
		return fmt.Errorf("%w: delete pick: %v", ErrDependencyUnavailable, err)
	}

	s.invalidatePool(ctx, e.PoolID)
	s.record(ctx, callerID, audit.ActionPickDeleted,
		fmt.Sprintf("entry=%s week=%d team=%s", entryID, week, p.Team))

	return nil
}

func (s *PickService) ownedEntry(ctx context.Context, callerID, entryID string) (entry.Entry, error) {
	e, found, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: get entry %s: %v", ErrDependencyUnavailable, entryID, err)
	}
	if !found {
		return entry.Entry{}, fmt.Errorf("%w: entry=%s", ErrNotFound, entryID)
	}
	if e.UserID != callerID {
		return entry.Entry{}, fmt.Errorf("%w: entry %s is not owned by caller", ErrForbidden, entryID)
	}
	return e, nil
}

func (s *PickService) lockEntry(entryID string) func() {
	s.mu.Lock()
	lock, ok := s.entryLocks[entryID]
	if !ok {
		lock = &sync.Mutex{}
		s.entryLocks[entryID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *PickService) invalidatePool(ctx context.Context, poolID string) {
	if s.stats != nil {
		s.stats.InvalidatePool(ctx, poolID)
	}
}

func (s *PickService) record(ctx context.Context, userID, action, details string) {
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
