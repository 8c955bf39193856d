/*
handlers.go - HTTP API handlers for the projection system

PURPOSE:
  Exposes the projection engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine,
  factory, and store.

ENDPOINTS:
  Projections:
    GET    /api/projections                 List stored projections
    POST   /api/projections                 Create projection (validates + computes)
    GET    /api/projections/{id}            Get projection config
    PUT    /api/projections/{id}            Update config (recomputes)
    DELETE /api/projections/{id}            Delete projection
    POST   /api/projections/{id}/recompute  Recompute from stored config
    GET    /api/projections/{id}/records    Monthly records
    GET    /api/projections/{id}/summary    Yearly summaries

  Stateless:
    POST   /api/simulate                    Run the engine without persisting

  Admin:
    POST   /api/admin/recompute-all         Recompute every stored projection

  Scenarios:
    GET    /api/scenarios                   List demo scenarios
    POST   /api/scenarios/load              Load a demo scenario

REQUEST FLOW:
  1. Parse HTTP request
  2. Materialize config via factory (defaults + validation)
  3. Call engine.Simulate
  4. Persist via store where the endpoint is stateful
  5. Serialize response

RECOMPUTE-ON-SAVE:
  Create and update always run a full simulation before committing, so
  the stored records never lag the stored config. The engine stays a
  pure function; the trigger lives here.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: ConfigurationError, malformed input
  - 404: Projection not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/projection-engine/engine"
	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// PROJECTION HANDLERS
// =============================================================================

// ListProjections returns all stored projections.
func (h *Handler) ListProjections(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListProjections(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projections", err)
		return
	}

	dtos := make([]ProjectionDTO, 0, len(records))
	for _, rec := range records {
		dto, err := toProjectionDTO(rec)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to decode stored config", err)
			return
		}
		dtos = append(dtos, dto)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetProjection returns a single stored projection.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetProjection(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get projection", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Projection not found", nil)
		return
	}

	dto, err := toProjectionDTO(*rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode stored config", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateProjection validates a config, runs the simulation, and stores both.
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	var req SaveProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	existing, err := h.Store.GetProjection(r.Context(), req.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check projection", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, fmt.Sprintf("Projection %q already exists", req.ID), nil)
		return
	}

	h.saveAndCompute(w, r, req, http.StatusCreated)
}

// UpdateProjection replaces a stored config and recomputes.
func (h *Handler) UpdateProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetProjection(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check projection", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Projection not found", nil)
		return
	}

	var req SaveProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ID = id

	h.saveAndCompute(w, r, req, http.StatusOK)
}

// saveAndCompute is the shared create/update path: validate, simulate,
// persist config and results together.
func (h *Handler) saveAndCompute(w http.ResponseWriter, r *http.Request, req SaveProjectionRequest, okStatus int) {
	cfg, err := factory.BuildConfig(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration", err)
		return
	}

	projection, err := engine.Simulate(cfg)
	if err != nil {
		// Validate already ran in BuildConfig, so this is unexpected.
		writeError(w, statusFor(err), "Simulation failed", err)
		return
	}

	configJSON, err := factory.MarshalConfig(req.Config)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode config", err)
		return
	}

	rec := sqlite.ProjectionRecord{
		ID:         req.ID,
		Name:       cfg.Name,
		ConfigJSON: configJSON,
	}
	if err := h.Store.SaveProjection(r.Context(), rec, projection); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save projection", err)
		return
	}

	writeJSON(w, okStatus, RecomputeResponse{
		ID:     req.ID,
		Months: len(projection.Records),
		Years:  len(projection.Years),
	})
}

// DeleteProjection removes a projection and its cached results.
func (h *Handler) DeleteProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteProjection(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete projection", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// RecomputeProjection re-runs the simulation from the stored config.
func (h *Handler) RecomputeProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetProjection(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get projection", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Projection not found", nil)
		return
	}

	cfg, err := factory.ParseConfig(rec.ConfigJSON)
	if err != nil {
		writeError(w, statusFor(err), "Stored configuration is invalid", err)
		return
	}

	projection, err := engine.Simulate(cfg)
	if err != nil {
		writeError(w, statusFor(err), "Simulation failed", err)
		return
	}

	if err := h.Store.ReplaceResults(r.Context(), id, projection); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store results", err)
		return
	}

	writeJSON(w, http.StatusOK, RecomputeResponse{
		ID:     id,
		Months: len(projection.Records),
		Years:  len(projection.Years),
	})
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

// GetRecords returns a projection's cached monthly records.
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetProjection(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get projection", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Projection not found", nil)
		return
	}

	records, err := h.Store.GetMonthlyRecords(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get records", err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordDTOs(records))
}

// GetSummary returns a projection's cached yearly summaries.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetProjection(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get projection", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Projection not found", nil)
		return
	}

	years, err := h.Store.GetYearSummaries(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get summaries", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTOs(years))
}

// =============================================================================
// STATELESS SIMULATION
// =============================================================================

// Simulate runs the engine on a config from the request body without
// persisting anything. Useful for what-if explorations from the UI.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := factory.BuildConfig(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration", err)
		return
	}

	projection, err := engine.Simulate(cfg)
	if err != nil {
		writeError(w, statusFor(err), "Simulation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, SimulateResponse{
		Records:   toRecordDTOs(projection.Records),
		Summaries: toSummaryDTOs(projection.Years),
	})
}

// =============================================================================
// ADMIN
// =============================================================================

// RecomputeAll recomputes every stored projection concurrently.
func (h *Handler) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	result, err := RecomputeAllProjections(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Batch recompute failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// HELPERS
// =============================================================================

func toProjectionDTO(rec sqlite.ProjectionRecord) (ProjectionDTO, error) {
	var doc factory.ConfigJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &doc); err != nil {
		return ProjectionDTO{}, err
	}
	return ProjectionDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Config:    doc,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	if engine.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
