package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/portalrank/internal/domain/types"
)

// TeamDependencies defines the interface for team lookups.
type TeamDependencies interface {
	TeamDetail(ctx context.Context, name string) (types.TeamDetail, error)
}

// TeamsHandler handles team detail requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGetTeam handles GET /teams/{name} requests.
func (h *TeamsHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /teams/
	name := strings.TrimPrefix(r.URL.Path, "/teams/")
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		fail(w, NewKind(op, ErrBadRequest))
		return
	}
	detail, err := h.deps.TeamDetail(r.Context(), name)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
