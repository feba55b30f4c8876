package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/usecase"
)

type createPoolRequest struct {
	Name              string  `json:"name" validate:"required,max=120"`
	Description       string  `json:"description" validate:"max=1000"`
	Visibility        string  `json:"visibility" validate:"omitempty,oneof=public private PUBLIC PRIVATE"`
	LockTime          *string `json:"lockTime"`
	TiesCountAsLoss   *bool   `json:"tiesCountAsLoss"`
	NoPickForfeit     *bool   `json:"noPickForfeit"`
	MaxEntriesPerUser *int    `json:"maxEntriesPerUser" validate:"omitempty,min=0,max=100"`
}

type updatePoolRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=120"`
	Description       *string `json:"description" validate:"omitempty,max=1000"`
	Visibility        *string `json:"visibility" validate:"omitempty,oneof=public private PUBLIC PRIVATE"`
	LockTime          *string `json:"lockTime"`
	TiesCountAsLoss   *bool   `json:"tiesCountAsLoss"`
	NoPickForfeit     *bool   `json:"noPickForfeit"`
	MaxEntriesPerUser *int    `json:"maxEntriesPerUser" validate:"omitempty,min=0,max=100"`
}

func (h *Handler) CreatePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePool")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createPoolRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lockTime, err := parseOptionalTime(req.LockTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rules := pool.DefaultRules()
	applyRuleOverrides(&rules, req.TiesCountAsLoss, req.NoPickForfeit, req.MaxEntriesPerUser)

	created, err := h.poolService.Create(ctx, usecase.CreatePoolInput{
		OwnerID:     principal.UserID,
		Name:        req.Name,
		Description: req.Description,
		Visibility:  req.Visibility,
		LockTime:    lockTime,
		Rules:       &rules,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create pool failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, poolToDTO(created))
}

func (h *Handler) ListPublicPools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPublicPools")
	defer span.End()

	pools, err := h.poolService.ListPublic(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list public pools failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]poolDTO, 0, len(pools))
	for _, p := range pools {
		items = append(items, poolToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMyPools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPools")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	pools, err := h.poolService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my pools failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]poolDTO, 0, len(pools))
	for _, p := range pools {
		items = append(items, poolToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPool")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	item, err := h.poolService.Get(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolToDTO(item))
}

func (h *Handler) UpdatePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePool")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	var req updatePoolRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lockTime, err := parseOptionalTime(req.LockTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdatePoolInput{
		CallerID:    principal.UserID,
		PoolID:      poolID,
		Name:        req.Name,
		Description: req.Description,
		Visibility:  req.Visibility,
		LockTime:    lockTime,
	}
	if req.TiesCountAsLoss != nil || req.NoPickForfeit != nil || req.MaxEntriesPerUser != nil {
		current, err := h.poolService.Get(ctx, poolID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		rules := current.Rules
		applyRuleOverrides(&rules, req.TiesCountAsLoss, req.NoPickForfeit, req.MaxEntriesPerUser)
		input.Rules = &rules
	}

	updated, err := h.poolService.Update(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolToDTO(updated))
}

func (h *Handler) DeletePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePool")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	if err := h.poolService.Delete(ctx, principal.UserID, poolID); err != nil {
		h.logger.WarnContext(ctx, "delete pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func applyRuleOverrides(rules *pool.Rules, ties, forfeit *bool, maxEntries *int) {
	if ties != nil {
		rules.TiesCountAsLoss = *ties
	}
	if forfeit != nil {
		rules.NoPickForfeit = *forfeit
	}
	if maxEntries != nil {
		rules.MaxEntriesPerUser = *maxEntries
	}
}

func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timestamp %q, expected RFC3339", usecase.ErrInvalidInput, *value)
	}
	utc := parsed.UTC()
	return &utc, nil
}
