package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/portalrank/internal/adapters/mq/queue"
	"github.com/okian/portalrank/internal/domain/dedupe"
	"github.com/okian/portalrank/internal/domain/model"
)

// TransferDependencies defines the interface for transfer ingestion dependencies.
type TransferDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, t model.Transfer) error
}

// TransfersHandler handles transfer submissions.
type TransfersHandler struct {
	deps TransferDependencies
}

// NewTransfersHandler creates a new transfers handler.
func NewTransfersHandler(deps TransferDependencies) *TransfersHandler {
	return &TransfersHandler{deps: deps}
}

// HandlePostTransfer handles POST /transfers requests.
func (h *TransfersHandler) HandlePostTransfer(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_transfer"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	t := req.transfer()

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), t.TransferID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	if err := h.deps.Enqueue(r.Context(), t); err != nil {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), t.TransferID)
		if errors.Is(err, queue.ErrFull) {
			fail(w, WrapKind(op, ErrBackpressure, err))
			return
		}
		fail(w, WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
