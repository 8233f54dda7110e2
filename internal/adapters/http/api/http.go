// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/mirzakhani/gamerank/internal/adapters/catalog"
	"github.com/mirzakhani/gamerank/internal/adapters/repository"
	"github.com/mirzakhani/gamerank/internal/adapters/sessions"
	app "github.com/mirzakhani/gamerank/internal/app"
	"github.com/mirzakhani/gamerank/internal/domain/comparison"
	"github.com/mirzakhani/gamerank/internal/domain/rankorder"
	"github.com/mirzakhani/gamerank/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Library operations.
	AddItem(ctx context.Context, ownerID, itemID string) (types.BacklogEntry, error)
	Ranking(ctx context.Context, ownerID string, limit int) ([]Entry, error)
	Backlog(ctx context.Context, ownerID string) ([]types.BacklogEntry, error)
	Move(ctx context.Context, ownerID, itemID string, position int) error
	Unrank(ctx context.Context, ownerID, itemID string) error

	// Comparison session operations.
	StartSession(ctx context.Context, ownerID, itemID string) (types.Session, error)
	SessionState(ctx context.Context, ownerID string) (types.Session, error)
	ApplyChoice(ctx context.Context, ownerID, winner string) (types.Session, error)
	UndoChoice(ctx context.Context, ownerID string) (types.Session, error)
	CancelSession(ctx context.Context, ownerID string) error

	// Social scoring operations.
	TasteMatch(ctx context.Context, ownerID, friendID string) (types.MatchScore, error)
	Predict(ctx context.Context, ownerID, itemID string) (types.Prediction, error)
	EnqueueBatch(ctx context.Context, ownerID string, itemIDs []string) (string, error)
	BatchResults(ctx context.Context, jobID string) (types.BatchStatus, error)
}

// Entry mirrors the read shape returned by ranking queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rankingsHandler    *RankingsHandler
	itemsHandler       *ItemsHandler
	sessionsHandler    *SessionsHandler
	tasteMatchHandler  *TasteMatchHandler
	predictionsHandler *PredictionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		rankingsHandler:    NewRankingsHandler(deps, maxLimit),
		itemsHandler:       NewItemsHandler(deps),
		sessionsHandler:    NewSessionsHandler(deps),
		tasteMatchHandler:  NewTasteMatchHandler(deps),
		predictionsHandler: NewPredictionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/items", MetricsMiddleware(s.itemsHandler.HandleAddItem, "items"))
	mux.HandleFunc("/backlog/", MetricsMiddleware(s.itemsHandler.HandleGetBacklog, "backlog"))
	mux.HandleFunc("/rankings/", MetricsMiddleware(s.rankingsHandler.HandleRankings, "rankings"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleStartSession, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleSession, "sessions"))
	mux.HandleFunc("/tastematch", MetricsMiddleware(s.tasteMatchHandler.HandleGetTasteMatch, "tastematch"))
	mux.HandleFunc("/predictions/", MetricsMiddleware(s.predictionsHandler.HandlePredictions, "predictions"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ackResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates upstream errors into HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// statusFor maps domain and adapter sentinels to status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, sessions.ErrNoSession), errors.Is(err, rankorder.ErrNotRanked),
		errors.Is(err, app.ErrNoBatch):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, app.ErrNotFriends):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, app.ErrInsufficientRanked):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.Is(err, repository.ErrDuplicateItem), errors.Is(err, rankorder.ErrAlreadyRanked),
		errors.Is(err, sessions.ErrSessionActive):
		return http.StatusConflict, "conflict"
	case errors.Is(err, rankorder.ErrInvalidPosition), errors.Is(err, repository.ErrInvalidShift),
		errors.Is(err, comparison.ErrUnknownChoice), errors.Is(err, comparison.ErrNotAwaitingChoice),
		errors.Is(err, comparison.ErrNoHistory), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, sessions.ErrCapacity), errors.Is(err, app.ErrQueueFull),
		errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity, "unprocessable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := gojson.NewDecoder(r.Body).Decode(v); err != nil {
		return WrapKind("api.decode", ErrBadRequest, err)
	}
	return nil
}

// pathParts splits the path remainder after prefix into its segments.
func pathParts(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
