package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/domain/team"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
	"github.com/agsmith/run-my-pool/internal/usecase"
)

type Handler struct {
	poolService     *usecase.PoolService
	entryService    *usecase.EntryService
	pickService     *usecase.PickService
	statsService    *usecase.StatsService
	scheduleService *usecase.ScheduleService
	syncService     *usecase.ResultSyncService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	poolService *usecase.PoolService,
	entryService *usecase.EntryService,
	pickService *usecase.PickService,
	statsService *usecase.StatsService,
	scheduleService *usecase.ScheduleService,
	syncService *usecase.ResultSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		poolService:     poolService,
		entryService:    entryService,
		pickService:     pickService,
		statsService:    statsService,
		scheduleService: scheduleService,
		syncService:     syncService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams := team.All()
	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{Code: t.Code, Name: t.Name})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type teamDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type poolDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Visibility        string  `json:"visibility"`
	LockTime          *string `json:"lockTime,omitempty"`
	OwnerID           string  `json:"ownerId"`
	TiesCountAsLoss   bool    `json:"tiesCountAsLoss"`
	NoPickForfeit     bool    `json:"noPickForfeit"`
	MaxEntriesPerUser int     `json:"maxEntriesPerUser"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

type entryDTO struct {
	ID        string `json:"id"`
	PoolID    string `json:"poolId"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type pickDTO struct {
	ID        string `json:"id"`
	EntryID   string `json:"entryId"`
	Week      int    `json:"week"`
	Team      string `json:"team"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type gameDTO struct {
	ID         string `json:"id"`
	Week       int    `json:"week"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	KickoffAt  string `json:"kickoffAt"`
	Status     string `json:"status"`
	WinnerTeam string `json:"winnerTeam,omitempty"`
}

func poolToDTO(v pool.Pool) poolDTO {
	var lockTime *string
	if v.LockTime != nil {
		formatted := v.LockTime.UTC().Format(time.RFC3339)
		lockTime = &formatted
	}

	return poolDTO{
		ID:                v.ID,
		Name:              v.Name,
		Description:       v.Description,
		Visibility:        v.Visibility,
		LockTime:          lockTime,
		OwnerID:           v.OwnerID,
		TiesCountAsLoss:   v.Rules.TiesCountAsLoss,
		NoPickForfeit:     v.Rules.NoPickForfeit,
		MaxEntriesPerUser: v.Rules.MaxEntriesPerUser,
		CreatedAt:         v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func entryToDTO(v entry.Entry) entryDTO {
	return entryDTO{
		ID:        v.ID,
		PoolID:    v.PoolID,
		UserID:    v.UserID,
		Name:      v.Name,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func pickToDTO(v pick.Pick) pickDTO {
	return pickDTO{
		ID:        v.ID,
		EntryID:   v.EntryID,
		Week:      v.Week,
		Team:      v.Team,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func gameToDTO(v schedule.Game) gameDTO {
	return gameDTO{
		ID:         v.ID,
		Week:       v.Week,
		HomeTeam:   v.HomeTeam,
		AwayTeam:   v.AwayTeam,
		KickoffAt:  v.KickoffAt.UTC().Format(time.RFC3339),
		Status:     v.Status,
		WinnerTeam: v.WinnerTeam,
	}
}
