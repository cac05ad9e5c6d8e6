package activities

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Handler содержит HTTP обработчики для активностей
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSyncBatch обрабатывает POST /v1/activities/sync
func (h *Handler) HandleSyncBatch(w http.ResponseWriter, r *http.Request) {
	var req SyncBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	resp, err := h.service.SyncBatch(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingAthlete):
			h.sendError(w, http.StatusBadRequest, "missing_athlete", "athlete_id is required")
		case errors.Is(err, ErrEmptyBatch):
			h.sendError(w, http.StatusBadRequest, "empty_batch", "Batch must contain at least one activity")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to sync activities")
		}
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// HandleList обрабатывает GET /v1/athletes/{id}/activities
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "invalid_from", "from must be RFC3339")
			return
		}
		from = &parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "invalid_to", "to must be RFC3339")
			return
		}
		to = &parsed
	}

	resp, err := h.service.List(r.Context(), athleteID, from, to)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to list activities")
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// sendJSON отправляет JSON ответ
func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError отправляет ошибку в формате ErrorResponse
func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
