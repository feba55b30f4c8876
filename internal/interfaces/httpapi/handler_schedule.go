package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agsmith/run-my-pool/internal/usecase"
)

func (h *Handler) FullSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FullSchedule")
	defer span.End()

	games, err := h.scheduleService.FullSchedule(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list full schedule failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) WeekGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WeekGames")
	defer span.End()

	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidWeek))
		return
	}

	games, err := h.scheduleService.WeekGames(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week games failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) WeekTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WeekTeams")
	defer span.End()

	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidWeek))
		return
	}

	teams, err := h.scheduleService.TeamsPlaying(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week teams failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{Code: t.Code, Name: t.Name})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
