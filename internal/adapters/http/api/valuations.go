package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
)

// ValuationDependencies defines the interface for direct valuation.
type ValuationDependencies interface {
	ValuePlayer(ctx context.Context, p model.Player) (valuation.Result, error)
	Methodology() valuation.Methodology
}

// ValuationHandler values single players and describes the model.
type ValuationHandler struct {
	deps ValuationDependencies
}

// NewValuationHandler creates a new valuation handler.
func NewValuationHandler(deps ValuationDependencies) *ValuationHandler {
	return &ValuationHandler{deps: deps}
}

type valuationResponse struct {
	Player model.Player `json:"player"`
	valuation.Result
}

// HandlePostValuation handles POST /valuations requests.
func (h *ValuationHandler) HandlePostValuation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_valuation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var p model.Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.ValuePlayer(r.Context(), p)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, valuationResponse{Player: p, Result: res})
}

// HandleGetMethodology handles GET /methodology requests.
func (h *ValuationHandler) HandleGetMethodology(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Methodology())
}
