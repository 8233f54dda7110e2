// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/mirzakhani/gamerank/internal/domain/types"
)

// SessionDependencies defines the interface for comparison session operations.
type SessionDependencies interface {
	StartSession(ctx context.Context, ownerID, itemID string) (types.Session, error)
	SessionState(ctx context.Context, ownerID string) (types.Session, error)
	ApplyChoice(ctx context.Context, ownerID, winner string) (types.Session, error)
	UndoChoice(ctx context.Context, ownerID string) (types.Session, error)
	CancelSession(ctx context.Context, ownerID string) error
}

// SessionsHandler handles comparison session requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// startSessionRequest mirrors the schema for POST /sessions.
type startSessionRequest struct {
	OwnerID string `json:"owner_id"`
	ItemID  string `json:"item_id"`
}

func (s startSessionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.OwnerID) == "":
		return NewKind("api.start_session", ErrBadRequest)
	case strings.TrimSpace(s.ItemID) == "":
		return NewKind("api.start_session", ErrBadRequest)
	}
	return nil
}

// choiceRequest mirrors the schema for POST /sessions/{owner}/choice.
type choiceRequest struct {
	Winner string `json:"winner"`
}

// HandleStartSession handles POST /sessions requests.
func (h *SessionsHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req startSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	session, err := h.deps.StartSession(r.Context(), req.OwnerID, req.ItemID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// HandleSession routes /sessions/{owner} and its subpaths.
//
//	GET    /sessions/{owner}          read the session state
//	POST   /sessions/{owner}/choice   answer the current comparison
//	POST   /sessions/{owner}/undo     take back the last answer
//	DELETE /sessions/{owner}          cancel the session
func (h *SessionsHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/sessions/")
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGet(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleCancel(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "choice" && r.Method == http.MethodPost:
		h.handleChoice(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "undo" && r.Method == http.MethodPost:
		h.handleUndo(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionsHandler) handleGet(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.get_session"
	session, err := h.deps.SessionState(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionsHandler) handleChoice(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.apply_choice"
	var req choiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	session, err := h.deps.ApplyChoice(r.Context(), ownerID, req.Winner)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionsHandler) handleUndo(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.undo_choice"
	session, err := h.deps.UndoChoice(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionsHandler) handleCancel(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.cancel_session"
	if err := h.deps.CancelSession(r.Context(), ownerID); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "cancelled"})
}
