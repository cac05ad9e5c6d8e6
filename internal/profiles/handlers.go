package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

// Handler содержит HTTP обработчики для профилей
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGet обрабатывает GET /v1/athletes/{id}/profile
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	resp, err := h.service.Get(r.Context(), athleteID)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to load profile")
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// HandleUpdate обрабатывает PATCH /v1/athletes/{id}/profile
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	resp, err := h.service.Update(r.Context(), athleteID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExperience):
			h.sendError(w, http.StatusBadRequest, "invalid_experience", "Experience level must be beginner, intermediate, advanced or elite")
		case errors.Is(err, ErrInvalidPhilosophy):
			h.sendError(w, http.StatusBadRequest, "invalid_philosophy", "Training philosophy must be volume, intensity, balanced or polarized")
		case errors.Is(err, ErrInvalidClearField):
			h.sendError(w, http.StatusBadRequest, "invalid_clear_field", "Unknown field in clear_fields")
		case errors.Is(err, storage.ErrVersionConflict):
			h.sendError(w, http.StatusConflict, "version_conflict", "Profile changed concurrently, retry the update")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to update profile")
		}
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
