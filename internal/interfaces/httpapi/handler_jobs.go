package httpapi

import (
	"net/http"
)

type weekSyncResultDTO struct {
	Week    int    `json:"week"`
	Games   int    `json:"games"`
	Skipped bool   `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

type syncResultDTO struct {
	Weeks          []weekSyncResultDTO `json:"weeks"`
	GamesUpserted  int                 `json:"gamesUpserted"`
	FailedWeeks    int                 `json:"failedWeeks"`
	PoolsRefreshed int                 `json:"poolsRefreshed"`
}

func (h *Handler) RunSyncResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncResultsJob")
	defer span.End()

	result, err := h.syncService.SyncSeason(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync results job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	weeks := make([]weekSyncResultDTO, 0, len(result.Weeks))
	for _, wk := range result.Weeks {
		weeks = append(weeks, weekSyncResultDTO{
			Week:    wk.Week,
			Games:   wk.Games,
			Skipped: wk.Skipped,
			Error:   wk.Err,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultDTO{
		Weeks:          weeks,
		GamesUpserted:  result.GamesUpserted,
		FailedWeeks:    result.FailedWeeks,
		PoolsRefreshed: result.PoolsRefreshed,
	})
}
