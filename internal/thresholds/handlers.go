package thresholds

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 20

// Handler содержит HTTP обработчики для порогов
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleEstimate обрабатывает POST /v1/athletes/{id}/thresholds/estimate
func (h *Handler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	resp, err := h.service.Estimate(r.Context(), athleteID)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to estimate thresholds")
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// HandleAnalyze обрабатывает GET /v1/athletes/{id}/thresholds/analysis
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	resp, err := h.service.Analyze(r.Context(), athleteID, nil, nil)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to analyze activities")
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// HandleHistory обрабатывает GET /v1/athletes/{id}/thresholds/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			h.sendError(w, http.StatusBadRequest, "invalid_limit", "Limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	resp, err := h.service.History(r.Context(), athleteID, limit)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to load history")
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
