// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/portalrank/internal/adapters/mq/queue"
	"github.com/okian/portalrank/internal/adapters/repository"
	"github.com/okian/portalrank/internal/domain/dedupe"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/team"
	"github.com/okian/portalrank/internal/domain/types"
	"github.com/okian/portalrank/internal/domain/valuation"
)

const defaultMaxRankingsLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper
	StatsProvider

	// Enqueue pushes a transfer for async processing.
	Enqueue(ctx context.Context, t model.Transfer) error

	// Read operations expose standings data.
	TopN(ctx context.Context, n int) ([]team.Standing, error)
	TeamDetail(ctx context.Context, name string) (types.TeamDetail, error)
	Conferences(ctx context.Context) ([]team.ConferenceTotal, error)
	Summary(ctx context.Context) (types.LeagueSummary, error)
	ExportCSV(ctx context.Context, w io.Writer) error

	// Valuation exposes the engine directly.
	ValuePlayer(ctx context.Context, p model.Player) (valuation.Result, error)
	Methodology() valuation.Methodology
}

// Option configures the Server.
type Option func(*Server)

// WithMaxRankingsLimit caps the limit accepted by GET /rankings.
func WithMaxRankingsLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxLimit int

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	transfersHandler *TransfersHandler
	rankingsHandler  *RankingsHandler
	teamsHandler     *TeamsHandler
	leagueHandler    *LeagueHandler
	valuationHandler *ValuationHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{maxLimit: defaultMaxRankingsLimit}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.transfersHandler = NewTransfersHandler(deps)
	s.rankingsHandler = NewRankingsHandler(deps, s.maxLimit)
	s.teamsHandler = NewTeamsHandler(deps)
	s.leagueHandler = NewLeagueHandler(deps)
	s.valuationHandler = NewValuationHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/transfers", MetricsMiddleware(s.transfersHandler.HandlePostTransfer, "transfers"))
	mux.HandleFunc("/transfers.csv", MetricsMiddleware(s.leagueHandler.HandleExportCSV, "transfers_csv"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleGetTeam, "teams"))
	mux.HandleFunc("/conferences", MetricsMiddleware(s.leagueHandler.HandleGetConferences, "conferences"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.leagueHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/valuations", MetricsMiddleware(s.valuationHandler.HandlePostValuation, "valuations"))
	mux.HandleFunc("/methodology", MetricsMiddleware(s.valuationHandler.HandleGetMethodology, "methodology"))
}

// transferRequest mirrors the OpenAPI schema for POST /transfers.
type transferRequest struct {
	TransferID string       `json:"transfer_id"`
	Team       string       `json:"team"`
	Conference string       `json:"conference"`
	Direction  string       `json:"direction"`
	Player     model.Player `json:"player"`
	TS         string       `json:"ts"`
}

func (t transferRequest) validate() error {
	switch {
	case strings.TrimSpace(t.TransferID) == "":
		return errors.New("missing transfer_id")
	case strings.TrimSpace(t.Team) == "":
		return errors.New("missing team")
	case strings.TrimSpace(t.Player.Name) == "":
		return errors.New("missing player.name")
	}
	switch model.Direction(t.Direction) {
	case model.Inflow, model.Outflow:
	default:
		return fmt.Errorf("%w: %q", repository.ErrUnknownDirection, t.Direction)
	}
	if t.TS != "" {
		if _, err := time.Parse(time.RFC3339, t.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return valuation.Validate(t.Player)
}

// transfer converts a validated request. A missing ts defaults to now.
func (t transferRequest) transfer() model.Transfer {
	ts := time.Now().UTC()
	if t.TS != "" {
		ts, _ = time.Parse(time.RFC3339, t.TS)
	}
	return model.Transfer{
		TransferID: strings.TrimSpace(t.TransferID),
		Team:       strings.TrimSpace(t.Team),
		Conference: strings.TrimSpace(t.Conference),
		Direction:  model.Direction(t.Direction),
		Player:     t.Player,
		TS:         ts,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps upstream errors to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, valuation.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, repository.ErrUnknownDirection),
		errors.Is(err, repository.ErrInvalidTransfer):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBackpressure), errors.Is(err, queue.ErrFull):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes err with the status classify assigns to it.
func fail(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
