package api

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/okian/portalrank/internal/domain/team"
	"github.com/okian/portalrank/internal/domain/types"
)

// LeagueDependencies defines the interface for league-wide reads.
type LeagueDependencies interface {
	Conferences(ctx context.Context) ([]team.ConferenceTotal, error)
	Summary(ctx context.Context) (types.LeagueSummary, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// LeagueHandler serves league-wide aggregates and the transfer export.
type LeagueHandler struct {
	deps LeagueDependencies
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps LeagueDependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

// HandleGetConferences handles GET /conferences requests.
func (h *LeagueHandler) HandleGetConferences(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_conferences"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	confs, err := h.deps.Conferences(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, confs)
}

// HandleGetSummary handles GET /summary requests.
func (h *LeagueHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sum, err := h.deps.Summary(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// HandleExportCSV handles GET /transfers.csv requests.
func (h *LeagueHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_csv"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := h.deps.ExportCSV(r.Context(), &buf); err != nil {
		fail(w, WrapKind(op, ErrExport, err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transfers.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
