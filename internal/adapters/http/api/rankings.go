package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/portalrank/internal/domain/team"
)

// RankingsDependencies defines the interface for ranking operations.
type RankingsDependencies interface {
	TopN(ctx context.Context, n int) ([]team.Standing, error)
}

// RankingsHandler handles ranking requests.
type RankingsHandler struct {
	deps     RankingsDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRankings handles GET /rankings?limit=N requests. A missing limit
// returns up to maxLimit teams; larger limits are capped at maxLimit.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			fail(w, NewKind(op, ErrBadRequest))
			return
		}
	}
	n = min(n, h.maxLimit)

	standings, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, standings)
}
