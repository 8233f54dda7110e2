// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/mirzakhani/gamerank/internal/domain/types"
)

// PredictionDependencies defines the interface for prediction operations.
type PredictionDependencies interface {
	Predict(ctx context.Context, ownerID, itemID string) (types.Prediction, error)
	EnqueueBatch(ctx context.Context, ownerID string, itemIDs []string) (string, error)
	BatchResults(ctx context.Context, jobID string) (types.BatchStatus, error)
}

// PredictionsHandler handles prediction requests.
type PredictionsHandler struct {
	deps PredictionDependencies
}

// NewPredictionsHandler creates a new predictions handler.
func NewPredictionsHandler(deps PredictionDependencies) *PredictionsHandler {
	return &PredictionsHandler{deps: deps}
}

// batchRequest mirrors the schema for POST /predictions/batch.
type batchRequest struct {
	OwnerID string   `json:"owner_id"`
	ItemIDs []string `json:"item_ids"`
}

func (b batchRequest) validate() error {
	switch {
	case strings.TrimSpace(b.OwnerID) == "":
		return NewKind("api.batch", ErrBadRequest)
	case len(b.ItemIDs) == 0:
		return NewKind("api.batch", ErrBadRequest)
	}
	return nil
}

// batchAccepted is the reply to an accepted batch request.
type batchAccepted struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// HandlePredictions routes /predictions/ and its subpaths.
//
//	GET  /predictions/{owner}/{item}   predict one item for an owner
//	POST /predictions/batch            enqueue a batch prediction job
//	GET  /predictions/batch/{job}      read batch results
func (h *PredictionsHandler) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/predictions/")
	switch {
	case len(parts) == 1 && parts[0] == "batch" && r.Method == http.MethodPost:
		h.handleBatch(w, r)
	case len(parts) == 2 && parts[0] == "batch" && r.Method == http.MethodGet:
		h.handleBatchResults(w, r, parts[1])
	case len(parts) == 2 && r.Method == http.MethodGet:
		h.handlePredict(w, r, parts[0], parts[1])
	default:
		http.NotFound(w, r)
	}
}

func (h *PredictionsHandler) handlePredict(w http.ResponseWriter, r *http.Request, ownerID, itemID string) {
	const op = "api.predict"
	prediction, err := h.deps.Predict(r.Context(), ownerID, itemID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (h *PredictionsHandler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch"
	var req batchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	jobID, err := h.deps.EnqueueBatch(r.Context(), req.OwnerID, req.ItemIDs)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, batchAccepted{JobID: jobID, Status: "accepted"})
}

func (h *PredictionsHandler) handleBatchResults(w http.ResponseWriter, r *http.Request, jobID string) {
	const op = "api.batch_results"
	status, err := h.deps.BatchResults(r.Context(), jobID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, status)
}
