package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agsmith/run-my-pool/internal/usecase"
)

type survivorStatsDTO struct {
	PoolID               string  `json:"poolId"`
	TotalEntries         int     `json:"totalEntries"`
	Survivors            int     `json:"survivors"`
	Eliminated           int     `json:"eliminated"`
	SurvivorsPercentage  float64 `json:"survivorsPercentage"`
	EliminatedPercentage float64 `json:"eliminatedPercentage"`
}

type teamPickCountDTO struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

type weekDistributionDTO struct {
	PoolID       string             `json:"poolId"`
	Week         int                `json:"week"`
	TotalEntries int                `json:"totalEntries"`
	Picks        []teamPickCountDTO `json:"picks"`
	Unlocked     int                `json:"unlocked"`
	NoSelection  int                `json:"noSelection"`
}

func (h *Handler) GetPoolStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPoolStats")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	stats, err := h.statsService.SurvivorStats(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pool stats failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, survivorStatsDTO{
		PoolID:               stats.PoolID,
		TotalEntries:         stats.TotalEntries,
		Survivors:            stats.Survivors,
		Eliminated:           stats.Eliminated,
		SurvivorsPercentage:  stats.SurvivorsPercentage,
		EliminatedPercentage: stats.EliminatedPercentage,
	})
}

func (h *Handler) GetWeekDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekDistribution")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidWeek))
		return
	}

	dist, err := h.statsService.WeeklyDistribution(ctx, poolID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get week distribution failed", "pool_id", poolID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	picks := make([]teamPickCountDTO, 0, len(dist.Picks))
	for _, p := range dist.Picks {
		picks = append(picks, teamPickCountDTO{Team: p.Team, Count: p.Count})
	}

	writeSuccess(ctx, w, http.StatusOK, weekDistributionDTO{
		PoolID:       dist.PoolID,
		Week:         dist.Week,
		TotalEntries: dist.TotalEntries,
		Picks:        picks,
		Unlocked:     dist.Unlocked,
		NoSelection:  dist.NoSelection,
	})
}
