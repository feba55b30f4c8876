package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agsmith/run-my-pool/internal/usecase"
)

type submitPickRequest struct {
	Week int    `json:"week" validate:"required,min=1,max=30"`
	Team string `json:"team" validate:"required,min=2,max=3"`
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	var req submitPickRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.pickService.Submit(ctx, usecase.SubmitPickInput{
		CallerID: principal.UserID,
		EntryID:  entryID,
		Week:     req.Week,
		Team:     req.Team,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed",
			"entry_id", entryID,
			"week", req.Week,
			"team", req.Team,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(saved))
}

func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	picks, err := h.pickService.ListForEntry(ctx, principal.UserID, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "list picks failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeletePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidWeek))
		return
	}

	if err := h.pickService.Delete(ctx, principal.UserID, entryID, week); err != nil {
		h.logger.WarnContext(ctx, "delete pick failed", "entry_id", entryID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type entryStatusDTO struct {
	EntryID        string `json:"entryId"`
	State          string `json:"state"`
	EliminatedWeek int    `json:"eliminatedWeek,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

func (h *Handler) GetEntryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntryStatus")
	defer span.End()

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	verdict, err := h.statsService.EntryVerdict(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entry status failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryStatusDTO{
		EntryID:        entryID,
		State:          string(verdict.State),
		EliminatedWeek: verdict.EliminatedWeek,
		Reason:         verdict.Reason,
	})
}
