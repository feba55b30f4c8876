package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/usecase"
)

type createEntryRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type renameEntryRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	var req createEntryRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.entryService.Create(ctx, usecase.CreateEntryInput{
		CallerID: principal.UserID,
		PoolID:   poolID,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create entry failed", "pool_id", poolID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(created))
}

func (h *Handler) ListPoolEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPoolEntries")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	entries, err := h.entryService.ListPoolEntries(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list pool entries failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMyEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEntries")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	poolID := strings.TrimSpace(r.URL.Query().Get("pool_id"))
	var (
		entries []entry.Entry
		err     error
	)
	if poolID != "" {
		entries, err = h.entryService.ListMineByPool(ctx, principal.UserID, poolID)
	} else {
		entries, err = h.entryService.ListMine(ctx, principal.UserID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list my entries failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	item, err := h.entryService.Get(ctx, principal.UserID, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(item))
}

func (h *Handler) RenameEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	var req renameEntryRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	renamed, err := h.entryService.Rename(ctx, principal.UserID, entryID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(renamed))
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	if err := h.entryService.Delete(ctx, principal.UserID, entryID); err != nil {
		h.logger.WarnContext(ctx, "delete entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
